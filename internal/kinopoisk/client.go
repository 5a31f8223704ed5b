package kinopoisk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	defaultBaseURL  = "https://kinopoiskapiunofficial.tech"
	defaultCacheTTL = 24 * time.Hour
)

var (
	// ErrNotFound is returned when a film doesn't exist.
	ErrNotFound = errors.New("film not found")

	// ErrUnauthorized is returned when the API key is rejected.
	ErrUnauthorized = errors.New("kinopoisk api key rejected")

	// ErrRateLimited is returned when the request quota is exhausted.
	ErrRateLimited = errors.New("kinopoisk rate limit exceeded")
)

// Client is a Kinopoisk API client. Responses are cached in memory.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimSuffix(url, "/")
		}
	}
}

// WithCacheTTL sets the cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache.New(ttl, ttl/2)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "kinopoisk")
	}
}

// NewClient creates a new Kinopoisk client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache.New(defaultCacheTTL, time.Hour),
		log:   slog.Default().With("component", "kinopoisk"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchByKeyword returns the first page of films matching a free-text query.
func (c *Client) SearchByKeyword(ctx context.Context, keyword string) ([]FilmSummary, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, nil
	}

	cacheKey := "search:" + strings.ToLower(keyword)
	if cached, found := c.cache.Get(cacheKey); found {
		return cached.([]FilmSummary), nil
	}

	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("page", "1")

	var resp searchResponse
	if err := c.get(ctx, "/api/v2.1/films/search-by-keyword?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", keyword, err)
	}

	c.cache.Set(cacheKey, resp.Films, cache.DefaultExpiration)
	return resp.Films, nil
}

// GetFilm fetches the full record of a film.
func (c *Client) GetFilm(ctx context.Context, id int64) (*Film, error) {
	cacheKey := fmt.Sprintf("film:%d", id)
	if cached, found := c.cache.Get(cacheKey); found {
		return cached.(*Film), nil
	}

	var film Film
	if err := c.get(ctx, fmt.Sprintf("/api/v2.2/films/%d", id), &film); err != nil {
		return nil, fmt.Errorf("get film %d: %w", id, err)
	}

	c.cache.Set(cacheKey, &film, cache.DefaultExpiration)
	return &film, nil
}

// TrailerURL returns the first YouTube video of a film, or "" when it has none.
func (c *Client) TrailerURL(ctx context.Context, id int64) (string, error) {
	cacheKey := fmt.Sprintf("trailer:%d", id)
	if cached, found := c.cache.Get(cacheKey); found {
		return cached.(string), nil
	}

	var resp videosResponse
	if err := c.get(ctx, fmt.Sprintf("/api/v2.2/films/%d/videos", id), &resp); err != nil {
		return "", fmt.Errorf("get videos %d: %w", id, err)
	}

	var trailer string
	for _, v := range resp.Items {
		if v.Site == "YOUTUBE" && v.URL != "" {
			trailer = v.URL
			break
		}
	}

	c.cache.Set(cacheKey, trailer, cache.DefaultExpiration)
	return trailer, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("api request", "path", req.URL.Path, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusPaymentRequired, http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("kinopoisk API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
