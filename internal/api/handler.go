package api

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"country-aggregator/internal/domain"
	"country-aggregator/internal/service"
)

// Failure messages returned to callers, one per route.
const (
	msgCountry       = "Failed to fetch country data"
	msgByLanguage    = "Failed to fetch countries by language"
	msgByCurrency    = "Failed to fetch countries by currency"
	msgByRegion      = "Failed to fetch countries by region"
	msgBySubregion   = "Failed to fetch countries by subregion"
	msgLanguages     = "Failed to fetch languages"
	msgRegions       = "Failed to fetch regions"
	msgSubregions    = "Failed to fetch subregions"
	msgCurrencies    = "Failed to fetch currencies"
	msgFilter        = "Failed to filter countries"
	msgRouteNotFound = "Route not found"
)

// CountryHandler handles HTTP requests for country information.
type CountryHandler struct {
	service service.CountryService
	logger  *slog.Logger
}

// NewCountryHandler creates a new handler with a given service.
func NewCountryHandler(s service.CountryService, logger *slog.Logger) *CountryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CountryHandler{
		service: s,
		logger:  logger.With("component", "country_handler"),
	}
}

// GetCountry handles GET /api/country/{country}.
func (h *CountryHandler) GetCountry(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "country")

	details, err := h.service.Country(r.Context(), name)
	if err != nil {
		respondError(w, r, h.logger, http.StatusInternalServerError, msgCountry, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

// SearchByLanguage handles GET /api/country/language/{language}.
func (h *CountryHandler) SearchByLanguage(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, domain.SearchByLanguage, pathParam(r, "language"), msgByLanguage)
}

// SearchByCurrency handles GET /api/country/currency/{currency}.
func (h *CountryHandler) SearchByCurrency(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, domain.SearchByCurrency, pathParam(r, "currency"), msgByCurrency)
}

// SearchByRegion handles GET /api/country/region/{region}.
func (h *CountryHandler) SearchByRegion(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, domain.SearchByRegion, pathParam(r, "region"), msgByRegion)
}

// SearchBySubregion handles GET /api/country/subregion/{subregion}.
func (h *CountryHandler) SearchBySubregion(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, domain.SearchBySubregion, pathParam(r, "subregion"), msgBySubregion)
}

func (h *CountryHandler) search(w http.ResponseWriter, r *http.Request, field domain.SearchField, value, failure string) {
	body, err := h.service.Search(r.Context(), field, value)
	if err != nil {
		respondError(w, r, h.logger, http.StatusInternalServerError, failure, err)
		return
	}
	respondRaw(w, http.StatusOK, body)
}

// ListLanguages handles GET /api/languages.
func (h *CountryHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.service.Languages(r.Context())
	if err != nil {
		respondError(w, r, h.logger, http.StatusInternalServerError, msgLanguages, err)
		return
	}
	respondJSON(w, http.StatusOK, languages)
}

// ListRegions handles GET /api/regions.
func (h *CountryHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.service.Regions(r.Context())
	if err != nil {
		respondError(w, r, h.logger, http.StatusInternalServerError, msgRegions, err)
		return
	}
	respondJSON(w, http.StatusOK, regions)
}

// ListSubregions handles GET /api/subregions.
func (h *CountryHandler) ListSubregions(w http.ResponseWriter, r *http.Request) {
	subregions, err := h.service.Subregions(r.Context())
	if err != nil {
		respondError(w, r, h.logger, http.StatusInternalServerError, msgSubregions, err)
		return
	}
	respondJSON(w, http.StatusOK, subregions)
}

// ListCurrencies handles GET /api/currencies.
func (h *CountryHandler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.service.Currencies(r.Context())
	if err != nil {
		respondError(w, r, h.logger, http.StatusInternalServerError, msgCurrencies, err)
		return
	}
	respondJSON(w, http.StatusOK, currencies)
}

// FilterCountries handles GET /api/country/filter/filters. Recognised query
// parameters are language, currency, region and subregion.
func (h *CountryHandler) FilterCountries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.Filter{
		Language:  q.Get("language"),
		Currency:  q.Get("currency"),
		Region:    q.Get("region"),
		Subregion: q.Get("subregion"),
	}

	countries, err := h.service.Filter(r.Context(), filter)
	if err != nil {
		respondError(w, r, h.logger, http.StatusInternalServerError, msgFilter, err)
		return
	}
	respondJSON(w, http.StatusOK, countries)
}

// pathParam returns a decoded path parameter. chi matches on the raw path
// when the request contains escaped slashes, so the value may still be escaped.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

// NotFound answers unknown routes with a JSON 404.
func (h *CountryHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, h.logger, http.StatusNotFound, msgRouteNotFound, nil)
}
