package v1

import (
	"github.com/vmunix/kinoscout/internal/kinopoisk"
	"github.com/vmunix/kinoscout/internal/sources"
)

// filmSummaryResponse is one search hit.
type filmSummaryResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Year      int    `json:"year,omitempty"`
	Type      string `json:"type,omitempty"`
	Rating    string `json:"rating,omitempty"`
	PosterURL string `json:"poster_url,omitempty"`
}

// searchResponse is the response for GET /search.
type searchResponse struct {
	Query string                `json:"query"`
	Items []filmSummaryResponse `json:"items"`
	Total int                   `json:"total"`
}

// filmResponse is the API representation of a film.
type filmResponse struct {
	ID              int64    `json:"id"`
	IMDbID          string   `json:"imdb_id,omitempty"`
	Title           string   `json:"title"`
	OriginalTitle   string   `json:"original_title,omitempty"`
	Year            int      `json:"year,omitempty"`
	Description     string   `json:"description,omitempty"`
	Slogan          string   `json:"slogan,omitempty"`
	LengthMinutes   int      `json:"length_minutes,omitempty"`
	AgeLimit        int      `json:"age_limit,omitempty"`
	RatingKinopoisk float64  `json:"rating_kinopoisk,omitempty"`
	RatingIMDb      float64  `json:"rating_imdb,omitempty"`
	Genres          []string `json:"genres"`
	Countries       []string `json:"countries"`
	PosterURL       string   `json:"poster_url,omitempty"`
	TrailerURL      string   `json:"trailer_url,omitempty"`
	WebURL          string   `json:"web_url,omitempty"`
}

// outcomeResponse reports how one provider lookup ended.
type outcomeResponse struct {
	Provider   string `json:"provider"`
	Status     string `json:"status"`
	Cause      string `json:"cause,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// sourcesResponse is the response for GET /films/{id}/sources.
type sourcesResponse struct {
	FilmID   int64                `json:"film_id"`
	Title    string               `json:"title"`
	Sources  sources.Presentation `json:"sources"`
	Outcomes []outcomeResponse    `json:"outcomes"`
}

// providersResponse is the response for GET /providers.
type providersResponse struct {
	Providers []string `json:"providers"`
}

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status    string          `json:"status"`
	Version   string          `json:"version,omitempty"`
	Providers int             `json:"providers"`
	Checks    []checkResponse `json:"checks,omitempty"`
}

type checkResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func filmSummaryToResponse(f kinopoisk.FilmSummary) filmSummaryResponse {
	return filmSummaryResponse{
		ID:        f.FilmID,
		Title:     f.DisplayName(),
		Year:      int(f.Year),
		Type:      f.Type,
		Rating:    f.Rating,
		PosterURL: f.PosterURLPreview,
	}
}

func filmToResponse(f *kinopoisk.Film) filmResponse {
	return filmResponse{
		ID:              f.KinopoiskID,
		IMDbID:          f.IMDbID,
		Title:           f.Title(),
		OriginalTitle:   f.OriginalTitle(),
		Year:            int(f.Year),
		Description:     f.Description,
		Slogan:          f.Slogan,
		LengthMinutes:   f.FilmLength,
		AgeLimit:        f.AgeLimit(),
		RatingKinopoisk: f.RatingKinopoisk,
		RatingIMDb:      f.RatingIMDb,
		Genres:          f.GenreNames(),
		Countries:       f.CountryNames(),
		PosterURL:       f.PosterURL,
		WebURL:          f.WebURL,
	}
}

func outcomesToResponse(outcomes []sources.Outcome) []outcomeResponse {
	out := make([]outcomeResponse, 0, len(outcomes))
	for _, o := range outcomes {
		r := outcomeResponse{
			Provider:   o.Provider,
			Status:     string(o.Status),
			DurationMs: o.Duration.Milliseconds(),
		}
		if o.Failure != nil {
			r.Cause = string(o.Failure.Cause)
			if o.Failure.Err != nil {
				r.Error = o.Failure.Err.Error()
			}
		}
		out = append(out, r)
	}
	return out
}
