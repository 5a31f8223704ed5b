package sources

import (
	"cmp"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/vmunix/kinoscout/pkg/release"
)

// NoSourcesNotice is shown when an aggregation found nothing usable.
const NoSourcesNotice = "no sources found"

// Presentation is the display-ready form of an aggregation result.
type Presentation struct {
	Empty  bool    `json:"empty"`
	Notice string  `json:"notice,omitempty"`
	Groups []Group `json:"groups"`
}

// Group holds the displayed items of one provider.
type Group struct {
	Provider string `json:"provider"`
	Kind     Kind   `json:"kind"`
	Items    []Item `json:"items"`
	Total    int    `json:"total"`            // Items before truncation
	Hidden   int    `json:"hidden,omitempty"` // Items cut by the display limit
}

// Item is one display line. Attributes a source did not report are left empty.
type Item struct {
	Label     string `json:"label,omitempty"`
	Title     string `json:"title,omitempty"`
	Quality   string `json:"quality,omitempty"`
	Size      string `json:"size,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
	Seeders   *int   `json:"seeders,omitempty"`
	URL       string `json:"url,omitempty"`
}

// Default display limits per payload kind.
const (
	DefaultTranslationLimit = 5
	DefaultTorrentLimit     = 3
	DefaultStreamLimit      = 5
)

// Presenter turns aggregation results into a Presentation.
type Presenter struct {
	limits map[Kind]int
}

// PresenterOption configures a Presenter.
type PresenterOption func(*Presenter)

// WithLimit sets how many items of a kind are shown per provider.
func WithLimit(kind Kind, n int) PresenterOption {
	return func(p *Presenter) {
		if n > 0 {
			p.limits[kind] = n
		}
	}
}

// NewPresenter creates a presenter with default limits.
func NewPresenter(opts ...PresenterOption) *Presenter {
	p := &Presenter{
		limits: map[Kind]int{
			KindTranslations: DefaultTranslationLimit,
			KindTorrents:     DefaultTorrentLimit,
			KindStreams:      DefaultStreamLimit,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Present groups results by provider, keeping their order. Within a group,
// translations keep provider order, torrents are ranked by seeders and
// streams by resolution. An empty input yields Empty with NoSourcesNotice.
func (p *Presenter) Present(results []Result) Presentation {
	out := Presentation{Groups: []Group{}}

	for _, r := range results {
		var items []Item
		switch payload := r.Payload.(type) {
		case TranslationSet:
			items = translationItems(payload)
		case TorrentSet:
			items = torrentItems(payload)
		case StreamSet:
			items = streamItems(payload)
		default:
			continue
		}
		if len(items) == 0 {
			continue
		}

		g := Group{Provider: r.Provider, Kind: r.Kind(), Total: len(items)}
		if limit := p.limits[g.Kind]; limit > 0 && len(items) > limit {
			g.Hidden = len(items) - limit
			items = items[:limit]
		}
		g.Items = items
		out.Groups = append(out.Groups, g)
	}

	if len(out.Groups) == 0 {
		out.Empty = true
		out.Notice = NoSourcesNotice
	}
	return out
}

func translationItems(set TranslationSet) []Item {
	type key struct{ label, quality string }
	seen := make(map[key]bool, len(set))

	items := make([]Item, 0, len(set))
	for _, t := range set {
		k := key{t.Label, t.Quality}
		if seen[k] || (t.Label == "" && t.Quality == "") {
			continue
		}
		seen[k] = true
		items = append(items, Item{Label: t.Label, Quality: t.Quality})
	}
	return items
}

func torrentItems(set TorrentSet) []Item {
	ranked := slices.Clone(set)
	slices.SortStableFunc(ranked, func(a, b Torrent) int {
		return cmp.Compare(b.Seeders, a.Seeders)
	})

	items := make([]Item, 0, len(ranked))
	for _, t := range ranked {
		seeders := t.Seeders
		item := Item{Title: t.Title, Quality: t.Quality, Seeders: &seeders}
		if t.SizeBytes > 0 {
			item.SizeBytes = t.SizeBytes
			item.Size = humanize.Bytes(uint64(t.SizeBytes))
		}
		items = append(items, item)
	}
	return items
}

func streamItems(set StreamSet) []Item {
	ranked := slices.Clone(set)
	slices.SortStableFunc(ranked, func(a, b Stream) int {
		return cmp.Compare(release.ParseResolution(b.Quality), release.ParseResolution(a.Quality))
	})

	items := make([]Item, 0, len(ranked))
	for _, s := range ranked {
		if s.Quality == "" && s.URL == "" {
			continue
		}
		items = append(items, Item{Quality: s.Quality, URL: s.URL})
	}
	return items
}
