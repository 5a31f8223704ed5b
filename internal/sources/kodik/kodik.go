// Package kodik looks up dubbing and voice-over translations in the Kodik
// video aggregator.
package kodik

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/kinoscout/internal/sources"
)

const (
	// Name is the provider name shown to users.
	Name = "Kodik"

	DefaultBaseURL = "https://kodikapi.com"
)

// Config holds the provider settings.
type Config struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

// Provider implements sources.Provider on top of the Kodik search API.
type Provider struct {
	token      string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Kodik provider.
func New(cfg Config, log *slog.Logger) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Provider{
		token:      cfg.Token,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log.With("component", "kodik"),
	}
}

func (p *Provider) Name() string { return Name }

// Timeout returns the configured lookup budget; zero means the coordinator default.
func (p *Provider) Timeout() time.Duration { return p.timeout }

type searchResponse struct {
	Total   int            `json:"total"`
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Title       string `json:"title"`
	Quality     string `json:"quality"`
	Translation struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
		Type  string `json:"type"` // voice or subtitles
	} `json:"translation"`
}

// Locate returns the translations Kodik has for the movie. Lookup is by
// Kinopoisk ID, falling back to the IMDb ID.
func (p *Provider) Locate(ctx context.Context, movie sources.Movie) (sources.Payload, error) {
	if p.token == "" {
		return nil, fmt.Errorf("kodik token not configured: %w", sources.ErrNotFound)
	}

	params := url.Values{}
	params.Set("token", p.token)
	switch {
	case movie.KinopoiskID > 0:
		params.Set("kinopoisk_id", strconv.FormatInt(movie.KinopoiskID, 10))
	case movie.IMDbID != "":
		params.Set("imdb_id", movie.IMDbID)
	default:
		return nil, fmt.Errorf("no movie identifier: %w", sources.ErrNotFound)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", sources.ErrUnexpectedStatus, resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	set := make(sources.TranslationSet, 0, len(result.Results))
	for _, r := range result.Results {
		label := r.Translation.Title
		if r.Translation.Type == "subtitles" && label != "" {
			label += " (subtitles)"
		}
		set = append(set, sources.Translation{Label: label, Quality: r.Quality})
	}

	p.log.Debug("search complete", "kinopoisk_id", movie.KinopoiskID, "results", len(set))
	if len(set) == 0 {
		return nil, sources.ErrNotFound
	}
	return set, nil
}
