// Package bot implements the conversation flow of the movie bot: greeting,
// help, free-text search, disambiguation and the film card.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/kinoscout/internal/kinopoisk"
	"github.com/vmunix/kinoscout/internal/sources"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=bot.go -destination=mocks/mock_bot.go -package=mocks

// MaxChoices caps the disambiguation list.
const MaxChoices = 10

// SelectionPrefix prefixes the callback data of a choice.
const SelectionPrefix = "movie_"

// ErrInvalidSelection is returned for callback data that names no film.
var ErrInvalidSelection = errors.New("invalid selection")

// Resolver looks films up in the metadata service.
type Resolver interface {
	SearchByKeyword(ctx context.Context, keyword string) ([]kinopoisk.FilmSummary, error)
	GetFilm(ctx context.Context, id int64) (*kinopoisk.Film, error)
	TrailerURL(ctx context.Context, id int64) (string, error)
}

// Finder aggregates watch sources for a movie.
type Finder interface {
	FindSources(ctx context.Context, movie sources.Movie) sources.Aggregate
}

// Messenger delivers replies to the user of one conversation.
type Messenger interface {
	SendText(ctx context.Context, text string) error
	SendChoices(ctx context.Context, text string, choices []Choice) error
	SendCard(ctx context.Context, card Card) error
}

// Choice is one entry of a disambiguation list.
type Choice struct {
	Label string
	Data  string
}

// Card is everything shown for a single film.
type Card struct {
	Film       *kinopoisk.Film
	PosterURL  string
	TrailerURL string
	Sources    sources.Presentation
}

// Handler drives the conversation. It is safe for concurrent use.
type Handler struct {
	resolver  Resolver
	finder    Finder
	presenter *sources.Presenter
	log       *slog.Logger
}

// NewHandler creates a conversation handler.
func NewHandler(resolver Resolver, finder Finder, presenter *sources.Presenter, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	if presenter == nil {
		presenter = sources.NewPresenter()
	}
	return &Handler{
		resolver:  resolver,
		finder:    finder,
		presenter: presenter,
		log:       log.With("component", "bot"),
	}
}

// Start greets the user.
func (h *Handler) Start(ctx context.Context, m Messenger) error {
	return m.SendText(ctx, StartText)
}

// Help explains how to use the bot.
func (h *Handler) Help(ctx context.Context, m Messenger) error {
	return m.SendText(ctx, HelpText)
}

// HandleQuery searches for a free-text title. No match yields a not-found
// notice, one match the film card and several a choice list.
func (h *Handler) HandleQuery(ctx context.Context, m Messenger, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return m.SendText(ctx, HelpText)
	}
	if err := m.SendText(ctx, SearchingText); err != nil {
		return err
	}

	films, err := h.resolver.SearchByKeyword(ctx, query)
	if err != nil {
		h.log.Error("search failed", "query", query, "error", err)
		return m.SendText(ctx, SearchErrorText)
	}
	h.log.Debug("search complete", "query", query, "matches", len(films))

	switch len(films) {
	case 0:
		return m.SendText(ctx, NotFoundText)
	case 1:
		return h.showFilm(ctx, m, films[0].FilmID)
	}
	return m.SendChoices(ctx, ChooseText, choices(films))
}

// HandleSelection shows the film picked from a choice list.
func (h *Handler) HandleSelection(ctx context.Context, m Messenger, data string) error {
	id, err := ParseSelection(data)
	if err != nil {
		return err
	}
	return h.showFilm(ctx, m, id)
}

// showFilm is the single path that renders a film card.
func (h *Handler) showFilm(ctx context.Context, m Messenger, id int64) error {
	start := time.Now()
	log := h.log.With("kinopoisk_id", id)

	film, err := h.resolver.GetFilm(ctx, id)
	if err != nil {
		log.Error("get film failed", "error", err)
		return m.SendText(ctx, FilmErrorText)
	}

	card := Card{Film: film, PosterURL: film.PosterURL}
	var agg sources.Aggregate

	var g errgroup.Group
	g.Go(func() error {
		trailer, err := h.resolver.TrailerURL(ctx, id)
		if err != nil {
			log.Warn("trailer lookup failed", "error", err)
			return nil
		}
		card.TrailerURL = trailer
		return nil
	})
	g.Go(func() error {
		agg = h.finder.FindSources(ctx, film.Movie())
		return nil
	})
	_ = g.Wait()

	for _, f := range agg.Failures() {
		log.Warn("provider failed", "provider", f.Provider, "cause", f.Cause, "error", f.Err)
	}

	card.Sources = h.presenter.Present(agg.Results)
	log.Info("film card ready",
		"title", film.Title(),
		"groups", len(card.Sources.Groups),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return m.SendCard(ctx, card)
}

// ParseSelection extracts the film ID from choice callback data.
func ParseSelection(data string) (int64, error) {
	raw, ok := strings.CutPrefix(data, SelectionPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSelection, data)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSelection, data)
	}
	return id, nil
}

func choices(films []kinopoisk.FilmSummary) []Choice {
	if len(films) > MaxChoices {
		films = films[:MaxChoices]
	}
	out := make([]Choice, 0, len(films))
	for _, f := range films {
		label := f.DisplayName()
		if f.Year > 0 {
			label = fmt.Sprintf("%s (%d)", label, f.Year)
		}
		out = append(out, Choice{Label: label, Data: SelectionPrefix + strconv.FormatInt(f.FilmID, 10)})
	}
	return out
}
