// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

var (
	// ErrMissingAPIKey is returned by NewClient when no API key is configured.
	ErrMissingAPIKey = errors.New("tmdb: api key is required")

	// ErrRateLimited is returned when TMDB keeps answering 429 after every retry.
	ErrRateLimited = errors.New("tmdb: rate limit exceeded")
)

// maxBodySize bounds a single response body.
const maxBodySize = 8 << 20

// Client talks to the TMDB v3 API.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	cb         *gobreaker.CircuitBreaker[[]byte]
	cache      *Cache
	maxRetries int
	retryDelay time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithCache serves repeated requests from c.
func WithCache(c *Cache) ClientOption {
	return func(cl *Client) {
		cl.cache = c
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = h
	}
}

// WithRetryDelay sets the base delay of the 429 backoff.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(cl *Client) {
		cl.retryDelay = d
	}
}

// NewClient creates a TMDB client from cfg.
func NewClient(cfg *config.TMDBConfig, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), burst),
		cb:         newBreaker(),
		maxRetries: cfg.MaxRetries,
		retryDelay: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Popular returns one page of popular titles of the given kind.
func (c *Client) Popular(ctx context.Context, kind models.Kind, page int) (*PopularPage, error) {
	segment, err := pathKind(kind)
	if err != nil {
		return nil, err
	}
	query := url.Values{"page": {strconv.Itoa(page)}}

	var out PopularPage
	if err := c.getJSON(ctx, "/"+segment+"/popular", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Genres returns the genre list of the given kind.
func (c *Client) Genres(ctx context.Context, kind models.Kind) ([]Genre, error) {
	segment, err := pathKind(kind)
	if err != nil {
		return nil, err
	}

	var out GenreList
	if err := c.getJSON(ctx, "/genre/"+segment+"/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, result interface{}) error {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// get returns the response body of path, from the cache when possible.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	if c.language != "" {
		q.Set("language", c.language)
	}
	cacheKey := path + "?" + q.Encode()

	if c.cache != nil {
		body, ok, err := c.cache.Get(cacheKey)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("key", cacheKey).Msg("TMDB cache read failed")
		} else if ok {
			logging.Ctx(ctx).Debug().Str("key", cacheKey).Msg("TMDB cache hit")
			return body, nil
		}
	}

	q.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + q.Encode()

	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.fetch(ctx, path, reqURL)
	})
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(cacheKey, body); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("key", cacheKey).Msg("TMDB cache write failed")
		}
	}
	return body, nil
}

// fetch performs the GET, retrying on HTTP 429.
func (c *Client) fetch(ctx context.Context, endpoint, reqURL string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.RecordTMDBRequest(endpoint, 0, time.Since(start))
			return nil, fmt.Errorf("execute request: %s", logging.SanitizeError(err.Error()))
		}
		elapsed := time.Since(start)
		metrics.RecordTMDBRequest(endpoint, resp.StatusCode, elapsed)
		logging.Ctx(ctx).Debug().
			Str("url", logging.SanitizeURL(reqURL)).
			Int("status", resp.StatusCode).
			Dur("duration", elapsed).
			Msg("TMDB request")

		if resp.StatusCode == http.StatusTooManyRequests {
			_ = resp.Body.Close()
			if attempt >= c.maxRetries {
				return nil, fmt.Errorf("%w after %d retries", ErrRateLimited, attempt)
			}

			delay := c.retryDelay * (1 << attempt)
			if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && seconds >= 0 {
				delay = time.Duration(seconds) * time.Second
			}
			logging.Ctx(ctx).Warn().Str("endpoint", endpoint).Dur("retry_delay", delay).Int("attempt", attempt+1).Msg("TMDB rate limited (HTTP 429), retrying")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			continue
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", endpoint, err)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%s: unexpected status %d: %s", endpoint, resp.StatusCode, truncate(body, 200))
		}
		return body, nil
	}
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return strings.TrimSpace(string(b))
}
