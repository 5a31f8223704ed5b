package v1

import (
	"context"
	"errors"

	"github.com/vmunix/kinoscout/internal/kinopoisk"
	"github.com/vmunix/kinoscout/internal/sources"
)

//go:generate mockgen -source=deps.go -destination=mocks/mock_deps.go -package=mocks

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// Resolver defines the metadata lookups the API needs.
type Resolver interface {
	SearchByKeyword(ctx context.Context, keyword string) ([]kinopoisk.FilmSummary, error)
	GetFilm(ctx context.Context, id int64) (*kinopoisk.Film, error)
	TrailerURL(ctx context.Context, id int64) (string, error)
}

// Finder defines source aggregation.
type Finder interface {
	FindSources(ctx context.Context, movie sources.Movie) sources.Aggregate
	Providers() []string
}

// HealthCheck probes a backing service for the status endpoint.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// ServerDeps contains all dependencies for the API server.
type ServerDeps struct {
	Resolver  Resolver
	Finder    Finder
	Presenter *sources.Presenter // Optional: defaults to sources.NewPresenter()
	Checks    []HealthCheck      // Optional
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Resolver == nil {
		return errors.New("resolver is required")
	}
	if d.Finder == nil {
		return errors.New("finder is required")
	}
	return nil
}
