package api

import (
	"net/http"
	"time"

	batchapi "github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/api/batch"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/api/docs"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/api/middleware"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/telemetry"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(batchHandler *batchapi.Handler, tracing *telemetry.Tracing, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics)
	r.Use(tracing.Middleware())
	r.Use(cors.Handler(cors.Options{
		// Permissive development default, not a negotiated contract
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Health check endpoint: always available, never consults agent state
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Application routes under /api
	r.Route("/api", func(r chi.Router) {
		batchapi.RegisterRoutes(r, batchHandler)
	})

	return r
}
