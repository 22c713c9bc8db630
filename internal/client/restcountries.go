package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"country-aggregator/internal/domain"
	"country-aggregator/internal/metrics"
)

// DefaultBaseURL is the public REST Countries v3.1 API.
const DefaultBaseURL = "https://restcountries.com/v3.1"

var (
	// ErrNotFound is returned when the upstream answers 404.
	ErrNotFound = errors.New("not found upstream")
	// ErrUnexpectedStatus is returned for any other non-2xx answer.
	ErrUnexpectedStatus = errors.New("unexpected upstream status")
)

// RestCountriesClient interacts with the REST Countries API.
type RestCountriesClient struct {
	client  *http.Client
	BaseURL string
	metrics *metrics.Metrics
}

// NewRestCountriesClient creates a client for the REST Countries API.
// A zero timeout leaves outbound calls bounded only by the caller's context.
// m may be nil.
func NewRestCountriesClient(baseURL string, timeout time.Duration, m *metrics.Metrics) *RestCountriesClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &RestCountriesClient{
		client:  &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		metrics: m,
	}
}

// FindByName runs a name search and decodes every match.
func (c *RestCountriesClient) FindByName(ctx context.Context, name string) ([]domain.Country, error) {
	var countries []domain.Country
	if err := c.getJSON(ctx, "name", "/name/"+url.PathEscape(name), nil, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// Search runs one of the upstream search endpoints and returns the body as
// received, after checking it is valid JSON.
func (c *RestCountriesClient) Search(ctx context.Context, field domain.SearchField, value string) (json.RawMessage, error) {
	var raw json.RawMessage
	path := fmt.Sprintf("/%s/%s", field, url.PathEscape(value))
	if err := c.getJSON(ctx, string(field), path, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// All fetches every country, limited to the given fields. The upstream
// rejects /all without a field selector.
func (c *RestCountriesClient) All(ctx context.Context, fields ...string) ([]json.RawMessage, error) {
	if len(fields) == 0 {
		return nil, errors.New("at least one field is required")
	}
	query := url.Values{"fields": {strings.Join(fields, ",")}}

	var countries []json.RawMessage
	if err := c.getJSON(ctx, "all", "/all", query, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// getJSON issues a GET against the base URL and decodes a 2xx body into out.
func (c *RestCountriesClient) getJSON(ctx context.Context, endpoint, path string, query url.Values, out interface{}) error {
	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(endpoint, "error", time.Since(start))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveUpstream(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
