// Package propublica implements the organization provider backed by the
// ProPublica Nonprofit Explorer API v2. It owns all upstream I/O: rate
// limiting, retries, and raw-payload caching live here so the screening
// core stays pure.
package propublica

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/common"
	"github.com/kofort9/nonprofit-vetting-mcp/internal/interfaces"
	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

var (
	// ErrNotFound indicates the provider has no record for the requested EIN.
	ErrNotFound = errors.New("organization not found")

	// ErrInvalidEIN indicates a malformed caller-supplied EIN.
	ErrInvalidEIN = errors.New("invalid EIN")
)

// Service implements the OrganizationProvider interface.
type Service struct {
	config     common.ProviderConfig
	cacheCfg   common.CacheConfig
	cache      interfaces.PayloadCache
	logger     arbor.ILogger
	httpClient *http.Client
	limiter    *rate.Limiter
	now        func() time.Time
}

// NewService creates a new ProPublica provider. The cache is optional;
// pass nil to fetch every request from upstream.
func NewService(
	providerCfg common.ProviderConfig,
	cacheCfg common.CacheConfig,
	cache interfaces.PayloadCache,
	logger arbor.ILogger,
) *Service {
	rps := providerCfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := providerCfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Service{
		config:   providerCfg,
		cacheCfg: cacheCfg,
		cache:    cache,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: providerCfg.RequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		now:     time.Now,
	}
}

// GetOrganization fetches one organization by EIN and returns the
// normalized profile plus its full filing history.
func (s *Service) GetOrganization(ctx context.Context, ein string) (models.Organization, []models.RawFiling, error) {
	digits, err := canonicalEIN(ein)
	if err != nil {
		return models.Organization{}, nil, fmt.Errorf("%w: %s", ErrInvalidEIN, err)
	}

	endpoint := fmt.Sprintf("%s/organizations/%s.json", s.config.BaseURL, digits)
	body, err := s.fetch(ctx, endpoint, "org:"+digits)
	if err != nil {
		return models.Organization{}, nil, err
	}

	var resp organizationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.Organization{}, nil, fmt.Errorf("failed to decode organization response: %w", err)
	}

	org, filings := normalizeOrganization(&resp, s.now())

	s.logger.Debug().
		Str("ein", org.EIN).
		Str("name", org.Name).
		Int("filing_count", org.FilingCount).
		Msg("Organization fetched")

	return org, filings, nil
}

// SearchOrganizations runs a free-text search against the provider.
func (s *Service) SearchOrganizations(ctx context.Context, query string) ([]models.SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}

	endpoint := fmt.Sprintf("%s/search.json?q=%s", s.config.BaseURL, url.QueryEscape(query))
	body, err := s.fetch(ctx, endpoint, "search:"+query)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := normalizeSearchResults(&resp)

	s.logger.Debug().
		Str("query", query).
		Int("results_count", len(results)).
		Msg("Organization search completed")

	return results, nil
}

// fetch returns the response body for endpoint, serving from the payload
// cache when a fresh copy exists.
func (s *Service) fetch(ctx context.Context, endpoint, cacheKey string) ([]byte, error) {
	if body, ok := s.cachedPayload(ctx, cacheKey); ok {
		return body, nil
	}

	body, err := s.doRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	s.storePayload(ctx, cacheKey, body)
	return body, nil
}

func (s *Service) cachedPayload(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil || !s.cacheCfg.Enabled {
		return nil, false
	}

	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("cache_key", key).Msg("Payload cache read failed")
		return nil, false
	}
	if payload == nil {
		return nil, false
	}

	staleness := common.CheckPayloadStaleness(payload.FetchedAt, s.now(), s.cacheCfg.MaxAge)
	if staleness.IsStale {
		s.logger.Debug().
			Str("cache_key", key).
			Str("reason", staleness.Reason).
			Msg("Cached payload is stale, refetching")
		return nil, false
	}

	s.logger.Debug().Str("cache_key", key).Msg("Serving payload from cache")
	return payload.Body, true
}

func (s *Service) storePayload(ctx context.Context, key string, body []byte) {
	if s.cache == nil || !s.cacheCfg.Enabled {
		return
	}

	err := s.cache.Put(ctx, &models.CachedPayload{
		Key:       key,
		Body:      body,
		FetchedAt: s.now(),
	})
	if err != nil {
		// Cache writes are best effort; the caller already has the body.
		s.logger.Warn().Err(err).Str("cache_key", key).Msg("Payload cache write failed")
	}
}

// doRequest performs a rate-limited GET with retries. Transient upstream
// failures (429 and 5xx) are retried with linear backoff; a 404 maps to
// ErrNotFound immediately.
func (s *Service) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= s.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := s.config.RetryBackoff * time.Duration(attempt)
			s.logger.Debug().
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying provider request")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, retryable, err := s.attempt(ctx, endpoint)
		if err == nil {
			return body, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("provider request failed after %d retries: %w", s.config.MaxRetries, lastErr)
}

func (s *Service) attempt(ctx context.Context, endpoint string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build provider request: %w", err)
	}
	if s.config.UserAgent != "" {
		req.Header.Set("User-Agent", s.config.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	s.logger.Debug().Str("url", endpoint).Msg("Calling nonprofit data provider")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, true, fmt.Errorf("failed to read provider response: %w", err)
		}
		return body, false, nil

	case resp.StatusCode == http.StatusNotFound:
		return nil, false, ErrNotFound

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("provider returned status %d", resp.StatusCode)

	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, false, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(snippet))
	}
}
