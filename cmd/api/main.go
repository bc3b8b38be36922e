package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/arogyapath/backend/internal/adapters/cache"
	"github.com/arogyapath/backend/internal/adapters/database"
	"github.com/arogyapath/backend/internal/api/handlers"
	"github.com/arogyapath/backend/internal/api/middleware"
	"github.com/arogyapath/backend/internal/api/routes"
	"github.com/arogyapath/backend/internal/application/services"
	"github.com/arogyapath/backend/internal/domain/providers"
	"github.com/arogyapath/backend/internal/infrastructure/clients/groq"
	"github.com/arogyapath/backend/internal/infrastructure/clients/postgres"
	"github.com/arogyapath/backend/internal/infrastructure/clients/redis"
	"github.com/arogyapath/backend/internal/infrastructure/observability"
	"github.com/arogyapath/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Redis is optional: the application works without response caching.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, caching disabled")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// Adapters
	hospitalAdapter := database.NewHospitalAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)
	feedbackAdapter := database.NewFeedbackAdapter(pgClient)
	reportAdapter := database.NewReportAdapter(pgClient)

	groqClient := groq.NewClient(&cfg.Groq)
	if cfg.Groq.APIKey == "" {
		log.Warn().Msg("GROQ_API_KEY is not set; reports will use fallback narratives")
	}

	// Services
	ingestionService := services.NewIngestionService(hospitalAdapter, &cfg.Ingestion)
	hospitalService := services.NewHospitalService(hospitalAdapter)
	authService := services.NewAuthService(userAdapter, &cfg.JWT)
	feedbackService := services.NewFeedbackService(feedbackAdapter)
	reportService := services.NewReportService(reportAdapter, groqClient, &cfg.Storage, &cfg.Links)

	// Load the hospital directory on first boot
	if err := ingestionService.EnsureLoaded(ctx); err != nil {
		log.Error().Err(err).Msg("failed to load hospital directory")
	}

	// Handlers
	healthHandler := handlers.NewHealthHandler(hospitalService, authService)
	hospitalHandler := handlers.NewHospitalHandler(hospitalService, ingestionService)
	authHandler := handlers.NewAuthHandler(authService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	reportHandler := handlers.NewReportHandler(reportService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		log.Info().Msg("cache middleware initialized")
	}

	router := routes.NewRouter(
		healthHandler,
		hospitalHandler,
		authHandler,
		feedbackHandler,
		reportHandler,
		authService,
		cacheMiddleware,
		metrics,
		cfg.Storage.UploadsDir,
	)

	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // report generation waits on the model
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
