package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vmunix/kinoscout/internal/kinopoisk"
	"github.com/vmunix/kinoscout/internal/sources"
)

// Fixed replies.
const (
	StartText = `Hi! I help you find where to watch movies and series.

Send me a title in Russian or English and I will look it up on Kinopoisk
and check the available sources.

Commands:
/start - show this message
/help - usage help`

	HelpText = `How to use:

1. Send the title of a movie or series in Russian or English
2. If several films match, pick one from the list
3. Get the film card with its watch sources

Examples:
- Матрица
- Inception
- Интерстеллар`

	SearchingText   = "Searching Kinopoisk..."
	NotFoundText    = "Nothing found.\nTry a different query or check the spelling."
	ChooseText      = "Several films match. Pick one:"
	SearchErrorText = "Search is unavailable right now. Please try again later."
	FilmErrorText   = "Could not load the film details."
)

// Caption renders the film metadata as plain text.
func Caption(f *kinopoisk.Film) string {
	var b strings.Builder

	title := f.Title()
	if title == "" {
		title = "N/A"
	}
	if f.Year > 0 {
		fmt.Fprintf(&b, "%s (%d)\n", title, f.Year)
	} else {
		fmt.Fprintf(&b, "%s\n", title)
	}
	if orig := f.OriginalTitle(); orig != "" {
		fmt.Fprintf(&b, "%s\n", orig)
	}

	if f.KinopoiskID != 0 || f.IMDbID != "" {
		b.WriteString("\nIDs:\n")
		if f.KinopoiskID != 0 {
			fmt.Fprintf(&b, "  Kinopoisk: %d\n", f.KinopoiskID)
		}
		if f.IMDbID != "" {
			fmt.Fprintf(&b, "  IMDb: %s\n", f.IMDbID)
		}
	}

	if f.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", f.Description)
	}

	b.WriteString("\n")
	if f.RatingKinopoisk > 0 {
		fmt.Fprintf(&b, "Kinopoisk: %.1f/10\n", f.RatingKinopoisk)
	}
	if f.RatingIMDb > 0 {
		fmt.Fprintf(&b, "IMDb: %.1f/10\n", f.RatingIMDb)
	}
	if genres := f.GenreNames(); len(genres) > 0 {
		fmt.Fprintf(&b, "Genre: %s\n", strings.Join(genres, ", "))
	}
	if countries := f.CountryNames(); len(countries) > 0 {
		fmt.Fprintf(&b, "Country: %s\n", strings.Join(countries, ", "))
	}
	if f.FilmLength > 0 {
		fmt.Fprintf(&b, "Length: %d min\n", f.FilmLength)
	}
	if age := f.AgeLimit(); age > 0 {
		fmt.Fprintf(&b, "Age: %d+\n", age)
	}
	if f.Slogan != "" {
		fmt.Fprintf(&b, "\n«%s»\n", f.Slogan)
	}
	if f.WebURL != "" {
		fmt.Fprintf(&b, "\n%s\n", f.WebURL)
	}
	return strings.TrimRight(b.String(), "\n")
}

// SourcesText renders a presentation as plain text, one block per provider.
func SourcesText(p sources.Presentation) string {
	if p.Empty {
		return p.Notice
	}

	var b strings.Builder
	for i, g := range p.Groups {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n", g.Provider)
		for _, item := range g.Items {
			fmt.Fprintf(&b, "  - %s\n", ItemLine(item))
		}
		if g.Hidden > 0 {
			fmt.Fprintf(&b, "  ... and %d more\n", g.Hidden)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// ItemLine renders the attributes an item has, separated by " | ".
func ItemLine(item sources.Item) string {
	var parts []string
	for _, s := range []string{item.Label, item.Title, item.Quality, item.Size} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if item.Seeders != nil {
		parts = append(parts, strconv.Itoa(*item.Seeders)+" seeders")
	}
	if item.URL != "" {
		parts = append(parts, item.URL)
	}
	return strings.Join(parts, " | ")
}
