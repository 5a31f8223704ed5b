// Package library serves streams registered in the local catalog.
package library

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmunix/kinoscout/internal/library"
	"github.com/vmunix/kinoscout/internal/sources"
)

// Name is the provider name shown to users.
const Name = "Library"

// Catalog is the part of the library store the provider reads.
type Catalog interface {
	StreamsForMovie(ctx context.Context, kinopoiskID int64, imdbID string) ([]*library.Stream, error)
}

// Provider implements sources.Provider over the local catalog.
type Provider struct {
	catalog Catalog
	log     *slog.Logger
}

// New creates a library provider.
func New(catalog Catalog, log *slog.Logger) *Provider {
	if log == nil {
		log = slog.Default()
	}
	return &Provider{catalog: catalog, log: log.With("component", "library")}
}

func (p *Provider) Name() string { return Name }

// Locate returns catalog streams registered under the movie's Kinopoisk or IMDb ID.
func (p *Provider) Locate(ctx context.Context, movie sources.Movie) (sources.Payload, error) {
	if movie.KinopoiskID == 0 && movie.IMDbID == "" {
		return nil, fmt.Errorf("no movie identifier: %w", sources.ErrNotFound)
	}

	streams, err := p.catalog.StreamsForMovie(ctx, movie.KinopoiskID, movie.IMDbID)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	if len(streams) == 0 {
		return nil, sources.ErrNotFound
	}

	set := make(sources.StreamSet, len(streams))
	for i, s := range streams {
		set[i] = sources.Stream{Quality: s.Quality, URL: s.URL}
	}
	p.log.Debug("catalog lookup", "kinopoisk_id", movie.KinopoiskID, "streams", len(set))
	return set, nil
}
