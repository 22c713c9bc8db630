package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"country-aggregator/internal/domain"
	"country-aggregator/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByName_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/name/Germany", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, `[{"name":{"common":"Germany","official":"Federal Republic of Germany"},"capital":["Berlin"],"currencies":{"EUR":{"name":"Euro","symbol":"€"}},"population":83240525}]`)
	}))
	defer server.Close()

	client := NewRestCountriesClient(server.URL, time.Second, nil)

	countries, err := client.FindByName(context.Background(), "Germany")

	require.NoError(t, err)
	require.Len(t, countries, 1)
	assert.Equal(t, "Germany", countries[0].Name.Common)
	assert.Equal(t, []string{"Berlin"}, countries[0].Capital)
	assert.Equal(t, int64(83240525), countries[0].Population)
	_, eur, ok := countries[0].Currencies.First()
	require.True(t, ok)
	assert.Equal(t, "€", eur.Symbol)
}

func TestFindByName_EscapesPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/name/United States", r.URL.Path)
		fmt.Fprintln(w, `[]`)
	}))
	defer server.Close()

	client := NewRestCountriesClient(server.URL, time.Second, nil)

	countries, err := client.FindByName(context.Background(), "United States")

	require.NoError(t, err)
	assert.Empty(t, countries)
}

func TestFindByName_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintln(w, `{"status": 404, "message": "Not Found"}`)
	}))
	defer server.Close()

	client := NewRestCountriesClient(server.URL, time.Second, nil)

	_, err := client.FindByName(context.Background(), "NonExistentCountry")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFindByName_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewRestCountriesClient(server.URL, time.Second, nil)

	_, err := client.FindByName(context.Background(), "AnyCountry")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))
	assert.Contains(t, err.Error(), "500")
}

func TestFindByName_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, `[{"name": "Germany"`)
	}))
	defer server.Close()

	client := NewRestCountriesClient(server.URL, time.Second, nil)

	_, err := client.FindByName(context.Background(), "Germany")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestFindByName_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewRestCountriesClient(server.URL, 0, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FindByName(ctx, "Germany")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "context deadline exceeded")
}

func TestSearch_PassesBodyThrough(t *testing.T) {
	body := `[{"name":{"common":"Spain"},"region":"Europe"}]`
	testCases := []struct {
		field domain.SearchField
		value string
		path  string
	}{
		{domain.SearchByLanguage, "spa", "/lang/spa"},
		{domain.SearchByCurrency, "eur", "/currency/eur"},
		{domain.SearchByRegion, "europe", "/region/europe"},
		{domain.SearchBySubregion, "Southern Europe", "/subregion/Southern Europe"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.field), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tc.path, r.URL.Path)
				fmt.Fprint(w, body)
			}))
			defer server.Close()

			client := NewRestCountriesClient(server.URL, time.Second, nil)

			raw, err := client.Search(context.Background(), tc.field, tc.value)

			require.NoError(t, err)
			assert.JSONEq(t, body, string(raw))
		})
	}
}

func TestSearch_EmptyListIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client := NewRestCountriesClient(server.URL, time.Second, nil)

	raw, err := client.Search(context.Background(), domain.SearchByRegion, "nowhere")

	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestAll_SendsFieldSelector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/all", r.URL.Path)
		assert.Equal(t, "region,subregion", r.URL.Query().Get("fields"))
		fmt.Fprint(w, `[{"region":"Europe","subregion":"Western Europe"},{"region":"Asia","subregion":""}]`)
	}))
	defer server.Close()

	client := NewRestCountriesClient(server.URL, time.Second, nil)

	countries, err := client.All(context.Background(), "region", "subregion")

	require.NoError(t, err)
	require.Len(t, countries, 2)
	assert.JSONEq(t, `{"region":"Europe","subregion":"Western Europe"}`, string(countries[0]))
}

func TestAll_RequiresFields(t *testing.T) {
	client := NewRestCountriesClient("http://unused.invalid", time.Second, nil)

	_, err := client.All(context.Background())

	assert.Error(t, err)
}

func TestClient_RecordsUpstreamMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	m := metrics.New()
	client := NewRestCountriesClient(server.URL, time.Second, m)

	_, err := client.All(context.Background(), "languages")
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(m.Registry(), "aggregator_upstream_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewRestCountriesClient_Defaults(t *testing.T) {
	client := NewRestCountriesClient("", 0, nil)
	assert.Equal(t, DefaultBaseURL, client.BaseURL)

	client = NewRestCountriesClient("http://example.test/v3.1/", 0, nil)
	assert.Equal(t, "http://example.test/v3.1", client.BaseURL)
}
