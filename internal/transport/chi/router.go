package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/antopucung/GodotTeko-sub003/internal/metrics"
)

// NewRouter wires middleware and routes. apiKeys enables bearer auth when non-empty.
func NewRouter(s *Server, logger *zap.Logger, apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(logger))
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware())

	r.NotFound(s.NotFound)
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", s.SearchProducts)
		r.Get("/suggest", s.SuggestProducts)
		r.Get("/filters", s.ProductFilters)
		r.Get("/{id}", s.GetProduct)
	})

	return r
}
