package cars

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"car-price-scraper/config"
	"car-price-scraper/models"
	"car-price-scraper/storage"
	"car-price-scraper/utils"
)

// proxyStub answers like the scraping proxy. handle decides per target URL.
func proxyStub(t *testing.T, handle func(w http.ResponseWriter, target string)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req proxyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Source != "universal" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		handle(w, req.URL)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeContent(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"results": []map[string]string{{"content": html}},
	})
}

func newTestFetcher(t *testing.T, endpoint string) (*Fetcher, *storage.BrandStore) {
	t.Helper()
	store, err := storage.NewBrandStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	cfg := &config.Config{
		ProxyUsername:  "user",
		ProxyPassword:  "secret",
		ProxyEndpoint:  endpoint,
		BaseURL:        "https://www.cars.com/research/",
		MaxConcurrency: 2,
		MaxRetries:     3,
		RequestTimeout: 5 * time.Second,
	}
	logger := utils.NewNopLogger()
	f, err := NewFetcher(cfg, logger, NewExtractor(logger), store)
	require.NoError(t, err)
	f.retry.BaseDelay = time.Millisecond
	return f, store
}

func TestNewFetcherRequiresCredentials(t *testing.T) {
	cfg := &config.Config{ProxyUsername: "user"}
	_, err := NewFetcher(cfg, utils.NewNopLogger(), nil, nil)
	assert.ErrorIs(t, err, config.ErrMissingCredentials)
}

func TestResearchURL(t *testing.T) {
	f, _ := newTestFetcher(t, "http://unused")
	assert.Equal(t, "https://www.cars.com/research/land_rover/", f.ResearchURL("Land Rover"))
}

func TestFetchPersistsAndExtracts(t *testing.T) {
	srv := proxyStub(t, func(w http.ResponseWriter, target string) {
		assert.Equal(t, "https://www.cars.com/research/tesla/", target)
		writeContent(w, page(fullCard))
	})
	f, store := newTestFetcher(t, srv.URL)

	out := f.Fetch(context.Background(), "Tesla")
	require.True(t, out.OK(), "fetch failed: %v", out.Err)
	require.Len(t, out.Result.Listings, 1)
	assert.Equal(t, "Model Y", out.Result.Listings[0].Model)

	doc, err := store.Load("tesla")
	require.NoError(t, err)
	html, ok := doc.Content()
	require.True(t, ok)
	assert.Contains(t, html, "tesla-model-y")
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := proxyStub(t, func(w http.ResponseWriter, _ string) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeContent(w, page(fullCard))
	})
	f, _ := newTestFetcher(t, srv.URL)

	out := f.Fetch(context.Background(), "tesla")
	require.True(t, out.OK(), "fetch failed: %v", out.Err)
	assert.EqualValues(t, 3, calls.Load())
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := proxyStub(t, func(w http.ResponseWriter, _ string) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	})
	f, store := newTestFetcher(t, srv.URL)

	out := f.Fetch(context.Background(), "tesla")
	require.Error(t, out.Err)
	assert.ErrorIs(t, out.Err, ErrBadStatus)
	var se *StatusError
	require.True(t, errors.As(out.Err, &se))
	assert.Equal(t, http.StatusForbidden, se.Code)
	assert.EqualValues(t, 1, calls.Load())

	slugs, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, slugs, "failed fetch must not persist a document")
}

func TestFetchMalformedResponse(t *testing.T) {
	srv := proxyStub(t, func(w http.ResponseWriter, _ string) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	})
	f, _ := newTestFetcher(t, srv.URL)

	out := f.Fetch(context.Background(), "tesla")
	assert.ErrorIs(t, out.Err, ErrMalformedResponse)
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	var calls atomic.Int32
	srv := proxyStub(t, func(w http.ResponseWriter, target string) {
		calls.Add(1)
		if strings.Contains(target, "/ford/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeContent(w, page(fullCard))
	})
	f, store := newTestFetcher(t, srv.URL)

	outcomes := f.FetchAll(context.Background(), []string{"Tesla", "Ford", "tesla", "Kia"})
	require.Len(t, outcomes, 3)
	assert.EqualValues(t, 3, calls.Load(), "duplicate brand should be fetched once")

	assert.True(t, outcomes["tesla"].OK())
	assert.True(t, outcomes["kia"].OK())
	assert.False(t, outcomes["ford"].OK())

	slugs, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"kia", "tesla"}, slugs)

	doc, err := store.Load("kia")
	require.NoError(t, err)
	assert.Equal(t, models.KindSnapshot, doc.Kind)
}

func TestFetchAllHonoursCancelledContext(t *testing.T) {
	f, _ := newTestFetcher(t, "http://127.0.0.1:1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := f.FetchAll(ctx, []string{"Tesla", "Land Rover", "tesla"})
	require.Len(t, outcomes, 2)
	for slug, out := range outcomes {
		assert.False(t, out.OK(), "%s should fail", slug)
		assert.ErrorIs(t, out.Err, context.Canceled)
	}
	assert.Equal(t, "https://www.cars.com/research/land_rover/", outcomes["land_rover"].URL)
	assert.Equal(t, "Tesla", outcomes["tesla"].Brand)
}
