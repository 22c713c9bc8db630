package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"country-aggregator/internal/metrics"
)

// NewRouter creates and configures the HTTP router. m may be nil, in which
// case /metrics serves the global Prometheus registry.
func NewRouter(h *CountryHandler, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(TraceID)
	r.Use(RequestLogger(logger))
	r.Use(Metrics(m))
	r.Use(Recovery(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{TraceIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(h.NotFound)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			logger.Error("failed to write health check response", "error", err)
		}
	})
	r.Handle("/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/languages", h.ListLanguages)
		r.Get("/regions", h.ListRegions)
		r.Get("/subregions", h.ListSubregions)
		r.Get("/currencies", h.ListCurrencies)

		r.Route("/country", func(r chi.Router) {
			r.Get("/filter/filters", h.FilterCountries)
			r.Get("/language/{language}", h.SearchByLanguage)
			r.Get("/currency/{currency}", h.SearchByCurrency)
			r.Get("/region/{region}", h.SearchByRegion)
			r.Get("/subregion/{subregion}", h.SearchBySubregion)
			r.Get("/{country}", h.GetCountry)
		})
	})

	return r
}
