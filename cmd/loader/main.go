package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/arogyapath/backend/internal/adapters/database"
	"github.com/arogyapath/backend/internal/application/services"
	"github.com/arogyapath/backend/internal/infrastructure/clients/postgres"
	"github.com/arogyapath/backend/internal/infrastructure/observability"
	"github.com/arogyapath/backend/pkg/config"
)

// Admin tool that rebuilds the hospital directory from the empanelment CSV.
func main() {
	csvPath := flag.String("csv", "", "path to the hospital CSV (overrides HOSPITAL_CSV_PATH)")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall load timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger("arogyapath-loader", cfg.Server.Env)

	if *csvPath != "" {
		cfg.Ingestion.CSVPath = *csvPath
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	ingestion := services.NewIngestionService(database.NewHospitalAdapter(pgClient), &cfg.Ingestion)

	inserted, err := ingestion.Reload(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reload failed")
		os.Exit(1)
	}

	log.Info().Int("inserted", inserted).Msg("hospital directory reloaded")
}
