// Package videocdn looks up playable streams in the VideoCDN catalog.
package videocdn

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
	Name = "VideoCDN"

	DefaultBaseURL = "https://videocdn.tv"
)

// Config holds the provider settings.
type Config struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

// Provider implements sources.Provider for VideoCDN.
type Provider struct {
	token      string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a VideoCDN provider.
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
		log:        log.With("component", "videocdn"),
	}
}

func (p *Provider) Name() string { return Name }

// Timeout returns the configured lookup budget; zero means the coordinator default.
func (p *Provider) Timeout() time.Duration { return p.timeout }

type shortResponse struct {
	Result bool        `json:"result"`
	Error  string      `json:"error"`
	Data   []shortItem `json:"data"`
}

type shortItem struct {
	Title     string `json:"title"`
	Quality   string `json:"quality"`
	IframeSrc string `json:"iframe_src"`
}

// Locate returns the streams VideoCDN lists for the movie.
func (p *Provider) Locate(ctx context.Context, movie sources.Movie) (sources.Payload, error) {
	if p.token == "" {
		return nil, fmt.Errorf("videocdn token not configured: %w", sources.ErrNotFound)
	}

	params := url.Values{}
	params.Set("api_token", p.token)
	switch {
	case movie.KinopoiskID > 0:
		params.Set("kinopoisk_id", strconv.FormatInt(movie.KinopoiskID, 10))
	case movie.IMDbID != "":
		params.Set("imdb_id", movie.IMDbID)
	default:
		return nil, fmt.Errorf("no movie identifier: %w", sources.ErrNotFound)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/short?"+params.Encode(), nil)
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

	var result shortResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !result.Result {
		if result.Error != "" {
			return nil, fmt.Errorf("%w: %s", sources.ErrUnexpectedStatus, result.Error)
		}
		return nil, sources.ErrNotFound
	}

	set := make(sources.StreamSet, 0, len(result.Data))
	for _, item := range result.Data {
		set = append(set, sources.Stream{
			Quality: normalizeQuality(item.Quality),
			URL:     absoluteURL(item.IframeSrc),
		})
	}

	p.log.Debug("search complete", "kinopoisk_id", movie.KinopoiskID, "results", len(set))
	if len(set) == 0 {
		return nil, sources.ErrNotFound
	}
	return set, nil
}

// normalizeQuality maps catalog quality codes to display labels.
func normalizeQuality(q string) string {
	switch strings.ToLower(strings.TrimSpace(q)) {
	case "hddvd", "bluray", "fullhd":
		return "1080p"
	case "hdrip", "webrip", "hd":
		return "720p"
	case "dvdrip", "satrip", "sd":
		return "SD"
	case "tsrip", "camrip", "ts", "cam":
		return "CAM"
	}
	return q
}

// absoluteURL fixes protocol-relative player links.
func absoluteURL(src string) string {
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	return src
}
