package propublica

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/common"
	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

const orgResponseJSON = `{
	"organization": {
		"ein": 131234567,
		"name": "Community Food Bank",
		"city": "Brooklyn",
		"state": "NY",
		"subsection_code": 3,
		"ruling_date": "2009-03-01",
		"ntee_code": "K31"
	},
	"filings_with_data": [
		{"tax_prd": 202306, "formtype": 0, "totrevenue": 500000, "totfuncexpns": 400000},
		{"tax_prd": 202206, "formtype": 0, "totrevenue": 450000, "totfuncexpns": 380000}
	]
}`

const searchResponseJSON = `{
	"total_results": 1,
	"organizations": [
		{"ein": 131234567, "name": "Community Food Bank", "city": "Brooklyn", "state": "NY", "subseccd": 3, "ntee_code": "K31"}
	]
}`

// memoryCache is an in-memory PayloadCache for tests.
type memoryCache struct {
	payloads map[string]*models.CachedPayload
}

func newMemoryCache() *memoryCache {
	return &memoryCache{payloads: map[string]*models.CachedPayload{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (*models.CachedPayload, error) {
	return c.payloads[key], nil
}

func (c *memoryCache) Put(_ context.Context, payload *models.CachedPayload) error {
	c.payloads[payload.Key] = payload
	return nil
}

func (c *memoryCache) Close() error { return nil }

func newTestService(t *testing.T, baseURL string, cache *memoryCache) *Service {
	t.Helper()

	providerCfg := common.ProviderConfig{
		BaseURL:           baseURL,
		RequestTimeout:    5 * time.Second,
		RequestsPerSecond: 1000,
		Burst:             1000,
		MaxRetries:        2,
		RetryBackoff:      time.Millisecond,
	}
	cacheCfg := common.CacheConfig{Enabled: cache != nil, MaxAge: time.Hour}

	var svc *Service
	if cache != nil {
		svc = NewService(providerCfg, cacheCfg, cache, common.GetLogger())
	} else {
		svc = NewService(providerCfg, cacheCfg, nil, common.GetLogger())
	}
	svc.now = func() time.Time { return time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestGetOrganization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/organizations/131234567.json", r.URL.Path)
		w.Write([]byte(orgResponseJSON))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, nil)

	org, filings, err := svc.GetOrganization(context.Background(), "13-1234567")
	require.NoError(t, err)

	assert.Equal(t, "13-1234567", org.EIN)
	assert.Equal(t, "Community Food Bank", org.Name)
	assert.Equal(t, "03", org.Subsection)
	require.NotNil(t, org.LatestFiling)
	assert.Equal(t, "202306", org.LatestFiling.TaxPeriod)
	assert.Len(t, filings, 2)
}

func TestGetOrganizationNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, nil)

	_, _, err := svc.GetOrganization(context.Background(), "99-9999999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetOrganizationInvalidEIN(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, nil)

	_, _, err := svc.GetOrganization(context.Background(), "not-an-ein")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEIN))
	assert.Zero(t, hits.Load(), "invalid EIN should be rejected before any upstream call")
}

func TestGetOrganizationRetriesTransientErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(orgResponseJSON))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, nil)

	org, _, err := svc.GetOrganization(context.Background(), "131234567")
	require.NoError(t, err)
	assert.Equal(t, "13-1234567", org.EIN)
	assert.Equal(t, int32(3), hits.Load())
}

func TestGetOrganizationRetriesExhausted(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, nil)

	_, _, err := svc.GetOrganization(context.Background(), "131234567")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 retries")
	assert.Equal(t, int32(3), hits.Load(), "initial attempt plus two retries")
}

func TestGetOrganizationServesFromCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(orgResponseJSON))
	}))
	defer server.Close()

	cache := newMemoryCache()
	svc := newTestService(t, server.URL, cache)

	_, _, err := svc.GetOrganization(context.Background(), "131234567")
	require.NoError(t, err)

	org, _, err := svc.GetOrganization(context.Background(), "131234567")
	require.NoError(t, err)

	assert.Equal(t, "13-1234567", org.EIN)
	assert.Equal(t, int32(1), hits.Load(), "second lookup should be served from cache")
}

func TestGetOrganizationRefetchesStalePayload(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(orgResponseJSON))
	}))
	defer server.Close()

	cache := newMemoryCache()
	svc := newTestService(t, server.URL, cache)

	// Seed the cache with a payload fetched well past the freshness window.
	stale := svc.now().Add(-48 * time.Hour)
	require.NoError(t, cache.Put(context.Background(), &models.CachedPayload{
		Key:       "org:131234567",
		Body:      []byte(orgResponseJSON),
		FetchedAt: stale,
	}))

	_, _, err := svc.GetOrganization(context.Background(), "131234567")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "stale payload should trigger a refetch")
}

func TestSearchOrganizations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "food bank", r.URL.Query().Get("q"))
		w.Write([]byte(searchResponseJSON))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, nil)

	results, err := svc.SearchOrganizations(context.Background(), "food bank")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "13-1234567", results[0].EIN)
	assert.Equal(t, "03", results[0].Subsection)
}

func TestSearchOrganizationsEmptyQuery(t *testing.T) {
	svc := newTestService(t, "http://unused", nil)

	_, err := svc.SearchOrganizations(context.Background(), "")
	require.Error(t, err)
}
