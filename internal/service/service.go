package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"country-aggregator/internal/client"
	"country-aggregator/internal/domain"
)

// ErrCountryNotFound is returned when a name lookup has no match.
var ErrCountryNotFound = errors.New("country not found")

// detailFields is the /all selector used by the filter route. The upstream
// caps the selector at ten fields.
var detailFields = []string{
	"name", "capital", "population", "area", "languages",
	"flags", "currencies", "latlng", "region", "subregion",
}

// CountryClient defines the interface for an external country data source.
// This allows us to mock the client in tests.
type CountryClient interface {
	FindByName(ctx context.Context, name string) ([]domain.Country, error)
	Search(ctx context.Context, field domain.SearchField, value string) (json.RawMessage, error)
	All(ctx context.Context, fields ...string) ([]json.RawMessage, error)
}

// CountryService defines the interface for country-related business logic.
type CountryService interface {
	Country(ctx context.Context, name string) (*domain.CountryDetails, error)
	Search(ctx context.Context, field domain.SearchField, value string) (json.RawMessage, error)
	Languages(ctx context.Context) ([]domain.LanguageEntry, error)
	Currencies(ctx context.Context) ([]domain.CurrencyEntry, error)
	Regions(ctx context.Context) ([]string, error)
	Subregions(ctx context.Context) ([]string, error)
	Filter(ctx context.Context, f domain.Filter) ([]json.RawMessage, error)
}

type countryService struct {
	client CountryClient
	logger *slog.Logger
}

// NewCountryService creates a new instance of the country service.
func NewCountryService(client CountryClient, logger *slog.Logger) CountryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &countryService{
		client: client,
		logger: logger.With("component", "country_service"),
	}
}

// Country looks a country up by name and projects the first match.
func (s *countryService) Country(ctx context.Context, name string) (*domain.CountryDetails, error) {
	countries, err := s.client.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCountryNotFound, name)
		}
		return nil, err
	}
	if len(countries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCountryNotFound, name)
	}

	s.logger.DebugContext(ctx, "country lookup resolved",
		"query", name,
		"matches", len(countries),
		"selected", countries[0].Name.Common)

	details := countries[0].Details()
	return &details, nil
}

// Search relays an upstream search result unchanged, including an empty list.
func (s *countryService) Search(ctx context.Context, field domain.SearchField, value string) (json.RawMessage, error) {
	return s.client.Search(ctx, field, value)
}

// Languages lists every language code seen across all countries once.
// When two countries name the same code differently, the later one wins.
func (s *countryService) Languages(ctx context.Context) ([]domain.LanguageEntry, error) {
	countries, err := s.fetchAll(ctx, "languages")
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]string)
	for _, c := range countries {
		for code, name := range c.Languages {
			byCode[code] = name
		}
	}

	out := make([]domain.LanguageEntry, 0, len(byCode))
	for _, code := range sortedKeys(byCode) {
		out = append(out, domain.LanguageEntry{Code: code, Language: byCode[code]})
	}
	return out, nil
}

// Currencies lists every currency code seen across all countries once.
// When two countries describe the same code differently, the later one wins.
func (s *countryService) Currencies(ctx context.Context) ([]domain.CurrencyEntry, error) {
	countries, err := s.fetchAll(ctx, "currencies")
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]domain.Currency)
	for _, c := range countries {
		for _, code := range c.Currencies.Codes() {
			cur, _ := c.Currencies.Get(code)
			byCode[code] = cur
		}
	}

	out := make([]domain.CurrencyEntry, 0, len(byCode))
	for _, code := range sortedKeys(byCode) {
		cur := byCode[code]
		out = append(out, domain.CurrencyEntry{Code: code, Name: cur.Name, Symbol: cur.Symbol})
	}
	return out, nil
}

// Regions lists the distinct non-empty regions.
func (s *countryService) Regions(ctx context.Context) ([]string, error) {
	countries, err := s.fetchAll(ctx, "region")
	if err != nil {
		return nil, err
	}
	return distinct(countries, func(c domain.Country) string { return c.Region }), nil
}

// Subregions lists the distinct non-empty subregions.
func (s *countryService) Subregions(ctx context.Context) ([]string, error) {
	countries, err := s.fetchAll(ctx, "subregion")
	if err != nil {
		return nil, err
	}
	return distinct(countries, func(c domain.Country) string { return c.Subregion }), nil
}

// Filter fetches every country and keeps the ones matching f. Matching
// countries are returned as the upstream sent them.
func (s *countryService) Filter(ctx context.Context, f domain.Filter) ([]json.RawMessage, error) {
	raws, err := s.client.All(ctx, detailFields...)
	if err != nil {
		return nil, err
	}

	out := make([]json.RawMessage, 0)
	for i, raw := range raws {
		c, err := domain.DecodeCountry(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode country %d: %w", i, err)
		}
		if f.Matches(c) {
			out = append(out, raw)
		}
	}

	s.logger.DebugContext(ctx, "countries filtered",
		"language", f.Language,
		"currency", f.Currency,
		"region", f.Region,
		"subregion", f.Subregion,
		"total", len(raws),
		"matched", len(out))

	return out, nil
}

func (s *countryService) fetchAll(ctx context.Context, fields ...string) ([]domain.Country, error) {
	raws, err := s.client.All(ctx, fields...)
	if err != nil {
		return nil, err
	}

	countries := make([]domain.Country, 0, len(raws))
	for i, raw := range raws {
		c, err := domain.DecodeCountry(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode country %d: %w", i, err)
		}
		countries = append(countries, c)
	}
	return countries, nil
}

func distinct(countries []domain.Country, key func(domain.Country) string) []string {
	seen := make(map[string]struct{})
	for _, c := range countries {
		if v := key(c); v != "" {
			seen[v] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
