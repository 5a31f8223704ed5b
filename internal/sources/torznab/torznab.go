// Package torznab searches many trackers at once through a Jackett or
// Prowlarr Torznab endpoint.
package torznab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vmunix/kinoscout/internal/sources"
	"github.com/vmunix/kinoscout/pkg/release"
	"github.com/vmunix/kinoscout/pkg/torznab"
)

const (
	// Name is the provider name shown to users.
	Name = "Torznab"

	defaultLimit = 50
)

// Config holds the provider settings.
type Config struct {
	BaseURL string // e.g. http://localhost:9117/api/v2.0/indexers/all/results/torznab
	APIKey  string
	Timeout time.Duration
}

// Provider implements sources.Provider on top of a Torznab client.
type Provider struct {
	client  *torznab.Client
	apiKey  string
	timeout time.Duration
	log     *slog.Logger
}

// New creates a Torznab provider.
func New(cfg Config, log *slog.Logger) *Provider {
	if log == nil {
		log = slog.Default()
	}
	client := torznab.NewClient(Name, cfg.BaseURL, cfg.APIKey, log).
		WithHTTPClient(&http.Client{Timeout: 30 * time.Second})
	return &Provider{
		client:  client,
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		log:     log.With("component", "torznab-provider"),
	}
}

func (p *Provider) Name() string { return p.client.Name() }

// Timeout returns the configured lookup budget; zero means the coordinator default.
func (p *Provider) Timeout() time.Duration { return p.timeout }

// Ping checks that the indexer answers a capabilities request.
func (p *Provider) Ping(ctx context.Context) error {
	if p.apiKey == "" {
		return errors.New("torznab api key not configured")
	}
	return p.client.Caps(ctx)
}

// Locate runs a movie search by IMDb ID when known, otherwise a free text
// search on title and year filtered by title similarity.
func (p *Provider) Locate(ctx context.Context, movie sources.Movie) (sources.Payload, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("torznab api key not configured: %w", sources.ErrNotFound)
	}

	titles := movie.Titles()
	q := torznab.Query{
		IMDbID:     movie.IMDbID,
		Categories: []int{torznab.CategoryMovies},
		Limit:      defaultLimit,
	}
	if q.IMDbID == "" {
		if len(titles) == 0 {
			return nil, fmt.Errorf("no movie identifier: %w", sources.ErrNotFound)
		}
		q.Term = release.SearchQuery(titles[len(titles)-1], movie.Year)
	}

	releases, err := p.client.Search(ctx, q)
	if err != nil {
		if errors.Is(err, torznab.ErrUnexpectedStatus) {
			return nil, fmt.Errorf("%w: %w", sources.ErrUnexpectedStatus, err)
		}
		return nil, err
	}

	var set sources.TorrentSet
	for _, rel := range releases {
		info := release.Parse(rel.Title)
		// ID searches are exact; text searches need the title check.
		if q.IMDbID == "" && !release.MatchesMovie(info, titles, movie.Year) {
			continue
		}
		set = append(set, sources.Torrent{
			Title:     rel.Title,
			Quality:   info.Quality(),
			SizeBytes: rel.Size,
			Seeders:   rel.Seeders,
		})
	}

	p.log.Debug("search complete", "imdbid", q.IMDbID, "query", q.Term, "releases", len(releases), "matched", len(set))
	if len(set) == 0 {
		return nil, sources.ErrNotFound
	}
	return set, nil
}
