// Package kinopoisk provides a client for the unofficial Kinopoisk API,
// used to resolve free-text titles into movie records.
package kinopoisk

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/vmunix/kinoscout/internal/sources"
)

// Year is a release year. The API reports it as a number in film details
// and as a string ("1999", "2019-2023", "null") in search results.
type Year int

func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	s := string(data)
	if len(s) >= 4 {
		s = s[:4]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*y = 0
		return nil
	}
	*y = Year(n)
	return nil
}

// FilmSummary is one keyword search hit.
type FilmSummary struct {
	FilmID           int64     `json:"filmId"`
	NameRu           string    `json:"nameRu"`
	NameEn           string    `json:"nameEn"`
	Type             string    `json:"type"` // FILM, TV_SERIES, MINI_SERIES, ...
	Year             Year      `json:"year"`
	Description      string    `json:"description"`
	Rating           string    `json:"rating"`
	PosterURL        string    `json:"posterUrl"`
	PosterURLPreview string    `json:"posterUrlPreview"`
	Countries        []Country `json:"countries"`
	Genres           []Genre   `json:"genres"`
}

// DisplayName returns the best available name for choice lists.
func (f FilmSummary) DisplayName() string {
	switch {
	case f.NameRu != "":
		return f.NameRu
	case f.NameEn != "":
		return f.NameEn
	}
	return "Unknown"
}

// Film is the full record of a film.
type Film struct {
	KinopoiskID      int64     `json:"kinopoiskId"`
	IMDbID           string    `json:"imdbId"`
	NameRu           string    `json:"nameRu"`
	NameEn           string    `json:"nameEn"`
	NameOriginal     string    `json:"nameOriginal"`
	PosterURL        string    `json:"posterUrl"`
	PosterURLPreview string    `json:"posterUrlPreview"`
	RatingKinopoisk  float64   `json:"ratingKinopoisk"`
	RatingIMDb       float64   `json:"ratingImdb"`
	WebURL           string    `json:"webUrl"`
	Year             Year      `json:"year"`
	FilmLength       int       `json:"filmLength"` // minutes
	Slogan           string    `json:"slogan"`
	Description      string    `json:"description"`
	Type             string    `json:"type"`
	RatingAgeLimits  string    `json:"ratingAgeLimits"` // e.g. "age16"
	Countries        []Country `json:"countries"`
	Genres           []Genre   `json:"genres"`
}

type Country struct {
	Country string `json:"country"`
}

type Genre struct {
	Genre string `json:"genre"`
}

// Title returns the localized name, falling back to the original one.
func (f *Film) Title() string {
	switch {
	case f.NameRu != "":
		return f.NameRu
	case f.NameOriginal != "":
		return f.NameOriginal
	}
	return f.NameEn
}

// OriginalTitle returns the original name when it differs from Title.
func (f *Film) OriginalTitle() string {
	orig := f.NameOriginal
	if orig == "" {
		orig = f.NameEn
	}
	if orig == f.Title() {
		return ""
	}
	return orig
}

// AgeLimit returns the minimum age, e.g. 16 for "age16", or 0.
func (f *Film) AgeLimit() int {
	n, err := strconv.Atoi(strings.TrimPrefix(f.RatingAgeLimits, "age"))
	if err != nil {
		return 0
	}
	return n
}

// GenreNames returns the genre names.
func (f *Film) GenreNames() []string {
	names := make([]string, 0, len(f.Genres))
	for _, g := range f.Genres {
		if g.Genre != "" {
			names = append(names, g.Genre)
		}
	}
	return names
}

// CountryNames returns the country names.
func (f *Film) CountryNames() []string {
	names := make([]string, 0, len(f.Countries))
	for _, c := range f.Countries {
		if c.Country != "" {
			names = append(names, c.Country)
		}
	}
	return names
}

// Movie converts the film into the record handed to source providers.
func (f *Film) Movie() sources.Movie {
	return sources.Movie{
		KinopoiskID:   f.KinopoiskID,
		IMDbID:        f.IMDbID,
		Title:         f.Title(),
		OriginalTitle: f.OriginalTitle(),
		Year:          int(f.Year),
	}
}

type searchResponse struct {
	Keyword    string        `json:"keyword"`
	PagesCount int           `json:"pagesCount"`
	Films      []FilmSummary `json:"films"`
}

type videosResponse struct {
	Total int     `json:"total"`
	Items []Video `json:"items"`
}

// Video is a trailer or teaser link.
type Video struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Site string `json:"site"` // YOUTUBE, KINOPOISK_WIDGET, ...
}
