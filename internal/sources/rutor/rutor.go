// Package rutor searches the Rutor torrent tracker by scraping its search
// result pages.
package rutor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dustin/go-humanize"
	"github.com/vmunix/kinoscout/internal/sources"
	"github.com/vmunix/kinoscout/pkg/release"
)

const (
	// Name is the provider name shown to users.
	Name = "Rutor"

	DefaultBaseURL = "http://rutor.info"

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Config holds the provider settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Provider implements sources.Provider for Rutor.
type Provider struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Rutor provider.
func New(cfg Config, log *slog.Logger) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Provider{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log.With("component", "rutor"),
	}
}

func (p *Provider) Name() string { return Name }

// Timeout returns the configured lookup budget; zero means the coordinator default.
func (p *Provider) Timeout() time.Duration { return p.timeout }

// Locate searches by title and year and keeps only rows whose release name
// matches the movie.
func (p *Provider) Locate(ctx context.Context, movie sources.Movie) (sources.Payload, error) {
	titles := movie.Titles()
	if len(titles) == 0 {
		return nil, fmt.Errorf("no movie title: %w", sources.ErrNotFound)
	}
	query := release.SearchQuery(titles[0], movie.Year)

	reqURL := p.baseURL + "/search/0/0/000/0/" + url.PathEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", sources.ErrUnexpectedStatus, resp.StatusCode)
	}

	rows, err := parseResults(resp.Body)
	if err != nil {
		return nil, err
	}

	var set sources.TorrentSet
	for _, row := range rows {
		info := release.Parse(row.Title)
		if !release.MatchesMovie(info, titles, movie.Year) {
			continue
		}
		set = append(set, sources.Torrent{
			Title:     row.Title,
			Quality:   info.Quality(),
			SizeBytes: row.SizeBytes,
			Seeders:   row.Seeders,
		})
	}

	p.log.Debug("search complete", "query", query, "rows", len(rows), "matched", len(set))
	if len(set) == 0 {
		return nil, sources.ErrNotFound
	}
	return set, nil
}

// row is one listing of the search result table.
type row struct {
	Title     string
	SizeBytes int64
	Seeders   int
}

// parseResults extracts listings from a search result page. A page without
// the result table is a decode error; a table without rows yields nothing.
func parseResults(r io.Reader) ([]row, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sources.ErrDecode, err)
	}

	table := doc.Find("div#index table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: result table not found", sources.ErrDecode)
	}

	var rows []row
	table.Find("tr.gai, tr.tum").Each(func(_ int, tr *goquery.Selection) {
		title := strings.TrimSpace(tr.Find(`a[href^="/torrent/"]`).First().Text())
		if title == "" {
			return
		}
		cells := tr.Find("td")
		// Layout: date, title, [comments], size, peers.
		if cells.Length() < 4 {
			return
		}
		rows = append(rows, row{
			Title:     title,
			SizeBytes: parseSize(cells.Eq(cells.Length() - 2).Text()),
			Seeders:   parseCount(tr.Find("span.green").First().Text()),
		})
	})
	return rows, nil
}

// binaryUnits maps the tracker's size units to their binary meaning.
var binaryUnits = map[string]string{
	"KB": "KiB",
	"MB": "MiB",
	"GB": "GiB",
	"TB": "TiB",
}

// parseSize reads sizes such as "1.46&nbsp;GB", where GB means GiB.
// Unparseable sizes are zero.
func parseSize(s string) int64 {
	fields := strings.Fields(strings.ReplaceAll(s, "\u00a0", " "))
	if len(fields) == 0 {
		return 0
	}
	if len(fields) == 2 {
		if unit, ok := binaryUnits[strings.ToUpper(fields[1])]; ok {
			fields[1] = unit
		}
	}
	n, err := humanize.ParseBytes(strings.Join(fields, " "))
	if err != nil {
		return 0
	}
	return int64(n)
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", "")))
	if err != nil {
		return 0
	}
	return n
}
