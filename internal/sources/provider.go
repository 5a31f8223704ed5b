// Package sources finds where a movie can be watched by querying a set of
// independent lookup providers concurrently and merging what they return.
package sources

import (
	"context"
	"time"
)

// Movie is the resolved movie identity handed to providers.
// Providers must treat it as read-only.
type Movie struct {
	KinopoiskID   int64  // Primary catalog ID
	IMDbID        string // Cross-reference ID, e.g. "tt0133093"
	Title         string // Display title
	OriginalTitle string
	Year          int
}

// Titles returns the non-empty distinct titles of the movie, display title first.
func (m Movie) Titles() []string {
	var titles []string
	if m.Title != "" {
		titles = append(titles, m.Title)
	}
	if m.OriginalTitle != "" && m.OriginalTitle != m.Title {
		titles = append(titles, m.OriginalTitle)
	}
	return titles
}

//go:generate mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks -exclude_interfaces=TimeoutProvider,Payload

// Provider looks up availability for a movie in one external source.
//
// Locate returns ErrNotFound when the source has nothing for the movie,
// including when an identifier the provider needs is missing. Any other error
// is treated as a failure of this provider only.
type Provider interface {
	Name() string
	Locate(ctx context.Context, movie Movie) (Payload, error)
}

// TimeoutProvider is implemented by providers that want a lookup budget
// other than the coordinator default.
type TimeoutProvider interface {
	Timeout() time.Duration
}

// Kind identifies the shape of a provider payload.
type Kind string

const (
	KindTranslations Kind = "translations"
	KindTorrents     Kind = "torrents"
	KindStreams      Kind = "streams"
)

// Payload is one of TranslationSet, TorrentSet or StreamSet.
type Payload interface {
	Kind() Kind
	Len() int
}

// Translation is a dubbing or voice-over option.
type Translation struct {
	Label   string
	Quality string
}

// Torrent is a single torrent listing.
type Torrent struct {
	Title     string
	Quality   string
	SizeBytes int64
	Seeders   int
}

// Stream is a playable stream listing.
type Stream struct {
	Quality string
	URL     string
}

// TranslationSet lists translations in provider order.
type TranslationSet []Translation

// TorrentSet lists torrents in provider order.
type TorrentSet []Torrent

// StreamSet lists streams in provider order.
type StreamSet []Stream

func (TranslationSet) Kind() Kind { return KindTranslations }
func (TorrentSet) Kind() Kind     { return KindTorrents }
func (StreamSet) Kind() Kind      { return KindStreams }

func (s TranslationSet) Len() int { return len(s) }
func (s TorrentSet) Len() int     { return len(s) }
func (s StreamSet) Len() int      { return len(s) }

// Result is a positive provider outcome tagged with the provider name.
type Result struct {
	Provider string
	Payload  Payload
}

// Kind returns the payload kind.
func (r Result) Kind() Kind {
	if r.Payload == nil {
		return ""
	}
	return r.Payload.Kind()
}
