package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds a single provider lookup unless the provider
// declares its own budget.
const DefaultTimeout = 10 * time.Second

// Status is the outcome class of one provider lookup.
type Status string

const (
	StatusFound    Status = "found"
	StatusNotFound Status = "not_found"
	StatusFailed   Status = "failed"
)

// Outcome records how a single provider lookup ended.
type Outcome struct {
	Provider string
	Status   Status
	Failure  *Failure // Set when Status is StatusFailed
	Duration time.Duration
}

// Aggregate is the result of one aggregation pass.
type Aggregate struct {
	// Results holds positive outcomes in registration order.
	Results []Result
	// Outcomes holds one entry per registered provider, in registration order.
	Outcomes []Outcome
}

// Failures returns the failed lookups of the pass.
func (a Aggregate) Failures() []*Failure {
	var out []*Failure
	for _, o := range a.Outcomes {
		if o.Failure != nil {
			out = append(out, o.Failure)
		}
	}
	return out
}

// Coordinator runs every registered provider against a movie and merges
// the positive results.
type Coordinator struct {
	registry *Registry
	timeout  time.Duration
	log      *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTimeout sets the default per-provider lookup budget.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewCoordinator creates a coordinator over the given registry.
func NewCoordinator(registry *Registry, log *slog.Logger, opts ...Option) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	c := &Coordinator{
		registry: registry,
		timeout:  DefaultTimeout,
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Providers returns the registered provider names in display order.
func (c *Coordinator) Providers() []string {
	return c.registry.Names()
}

// FindSources queries all providers concurrently and waits for every one of
// them to finish or run out of time. Failed and empty lookups are dropped;
// the remaining results keep registration order. Cancelling ctx cancels all
// in-flight lookups.
func (c *Coordinator) FindSources(ctx context.Context, movie Movie) Aggregate {
	providers := c.registry.snapshot()
	c.log.Debug("aggregation started", "kinopoisk_id", movie.KinopoiskID, "title", movie.Title, "providers", len(providers))
	start := time.Now()

	// Each goroutine owns one slot, so no locking is needed.
	payloads := make([]Payload, len(providers))
	outcomes := make([]Outcome, len(providers))

	var g errgroup.Group
	for i, e := range providers {
		g.Go(func() error {
			payloads[i], outcomes[i] = c.locate(ctx, e.name, e.provider, movie)
			return nil
		})
	}
	_ = g.Wait()

	agg := Aggregate{Outcomes: outcomes}
	var failed int
	for i, o := range outcomes {
		switch o.Status {
		case StatusFound:
			agg.Results = append(agg.Results, Result{Provider: o.Provider, Payload: payloads[i]})
		case StatusFailed:
			failed++
		}
	}

	c.log.Info("aggregation complete",
		"kinopoisk_id", movie.KinopoiskID,
		"providers", len(providers),
		"found", len(agg.Results),
		"failed", failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return agg
}

type lookup struct {
	payload Payload
	err     error
}

// locate runs one provider lookup. Any panic in the provider, including in
// Timeout or the payload methods, becomes a Failure with CauseInternal.
func (c *Coordinator) locate(ctx context.Context, name string, p Provider, movie Movie) (payload Payload, outcome Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			f := &Failure{Provider: name, Cause: CauseInternal, Err: fmt.Errorf("panic: %v", r)}
			payload = nil
			outcome = Outcome{Provider: name, Status: StatusFailed, Failure: f, Duration: time.Since(start)}
			c.log.Warn("provider failed", "provider", name, "cause", f.Cause, "error", f.Err, "duration_ms", outcome.Duration.Milliseconds())
		}
	}()

	budget := c.timeout
	if tp, ok := p.(TimeoutProvider); ok && tp.Timeout() > 0 {
		budget = tp.Timeout()
	}

	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	done := make(chan lookup, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- lookup{err: &Failure{Provider: name, Cause: CauseInternal, Err: fmt.Errorf("panic: %v", r)}}
			}
		}()
		pl, err := p.Locate(ctx, movie)
		done <- lookup{payload: pl, err: err}
	}()

	// A provider that ignores its context is abandoned at the deadline.
	var res lookup
	select {
	case res = <-done:
	case <-ctx.Done():
		res = lookup{err: ctx.Err()}
	}

	outcome = Outcome{Provider: name, Duration: time.Since(start)}
	log := c.log.With("provider", name)

	switch {
	case res.err != nil && errors.Is(res.err, ErrNotFound):
		outcome.Status = StatusNotFound
		log.Debug("provider found nothing", "duration_ms", outcome.Duration.Milliseconds())
		return nil, outcome
	case res.err != nil:
		outcome.Status = StatusFailed
		outcome.Failure = NewFailure(name, res.err)
		log.Warn("provider failed", "cause", outcome.Failure.Cause, "error", res.err, "duration_ms", outcome.Duration.Milliseconds())
		return nil, outcome
	case res.payload == nil || res.payload.Len() == 0:
		outcome.Status = StatusNotFound
		log.Debug("provider returned empty payload", "duration_ms", outcome.Duration.Milliseconds())
		return nil, outcome
	}

	outcome.Status = StatusFound
	log.Debug("provider returned", "kind", res.payload.Kind(), "items", res.payload.Len(), "duration_ms", outcome.Duration.Milliseconds())
	return res.payload, outcome
}
