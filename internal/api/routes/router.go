package routes

import (
	"net/http"

	"github.com/arogyapath/backend/internal/api/handlers"
	"github.com/arogyapath/backend/internal/api/middleware"
	"github.com/arogyapath/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	healthHandler   *handlers.HealthHandler
	hospitalHandler *handlers.HospitalHandler
	authHandler     *handlers.AuthHandler
	feedbackHandler *handlers.FeedbackHandler
	reportHandler   *handlers.ReportHandler

	verifier        middleware.TokenVerifier
	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
	uploadsDir      string
}

// NewRouter creates a new router
func NewRouter(
	healthHandler *handlers.HealthHandler,
	hospitalHandler *handlers.HospitalHandler,
	authHandler *handlers.AuthHandler,
	feedbackHandler *handlers.FeedbackHandler,
	reportHandler *handlers.ReportHandler,
	verifier middleware.TokenVerifier,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	uploadsDir string,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		healthHandler:   healthHandler,
		hospitalHandler: hospitalHandler,
		authHandler:     authHandler,
		feedbackHandler: feedbackHandler,
		reportHandler:   reportHandler,
		verifier:        verifier,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
		uploadsDir:      uploadsDir,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)

	// Hospital directory endpoints
	r.mux.HandleFunc("GET /api/hospitals", r.hospitalHandler.ListHospitals)
	r.mux.HandleFunc("GET /api/hospitals/search", r.hospitalHandler.SearchHospitals)
	r.mux.HandleFunc("GET /api/hospitals/states", r.hospitalHandler.GetStates)
	r.mux.HandleFunc("GET /api/hospitals/districts/{state}", r.hospitalHandler.GetDistricts)
	r.mux.HandleFunc("GET /api/hospitals/{id}", r.hospitalHandler.GetHospital)

	// Admin endpoints
	r.mux.Handle("POST /api/admin/hospitals/reload",
		middleware.AuthMiddleware(r.verifier)(http.HandlerFunc(r.hospitalHandler.ReloadHospitals)))

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/signup", r.authHandler.Signup)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.Handle("GET /api/auth/profile",
		middleware.AuthMiddleware(r.verifier)(http.HandlerFunc(r.authHandler.Profile)))

	// Feedback endpoints
	r.mux.HandleFunc("POST /api/feedback", r.feedbackHandler.SubmitFeedback)
	r.mux.HandleFunc("GET /api/feedback/stats", r.feedbackHandler.GetStats)

	// Report endpoints. Generation requires a signed-in user; the stored
	// report and its rendered artifact are readable by id.
	r.mux.Handle("POST /api/reports/generate",
		middleware.AuthMiddleware(r.verifier)(http.HandlerFunc(r.reportHandler.GenerateReport)))
	r.mux.HandleFunc("GET /api/reports/{id}", r.reportHandler.GetReport)

	// Rendered report artifacts
	r.mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(r.uploadsDir))))

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
