package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"lostark-hub/partyfinder/internal/api"
	"lostark-hub/partyfinder/internal/logging"
	"lostark-hub/partyfinder/internal/middleware"
)

// RegisterRoutes builds the full HTTP handler. gatherer backs /metrics and should
// be the registry the metrics in deps were registered with.
func RegisterRoutes(deps *api.Dependencies, upSince time.Time, gatherer prometheus.Gatherer) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.SessionMiddleware(deps.Services.Sessions))
	r.Use(middleware.LanguageMiddleware(deps.Services.Languages))
	r.Use(middleware.Logging)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(deps.SQL, upSince))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	handlers := api.NewHandlers(deps)
	limiter := middleware.NewRateLimiter(rate.Limit(5), 20, "127.0.0.1")

	RegisterAuthRoutes(r, handlers, limiter)
	RegisterAPIRoutes(r, handlers, limiter)
	RegisterSeedRoutes(r, handlers, deps.Config.SeedAllowList)

	return r
}
