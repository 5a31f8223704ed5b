// Package torznab implements the Torznab torrent indexer API, the
// newznab-compatible protocol served by Jackett and Prowlarr.
package torznab

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrUnexpectedStatus is returned when the indexer answers with a non-200 status.
var ErrUnexpectedStatus = errors.New("unexpected status")

// CategoryMovies is the standard newznab movies category.
const CategoryMovies = 2000

// Client is a Torznab API client for a single endpoint.
type Client struct {
	name       string
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// Release is one torrent listing returned by the indexer.
type Release struct {
	Title       string
	GUID        string
	DownloadURL string
	Size        int64
	Seeders     int
	Peers       int
	IMDbID      string
	PublishDate time.Time
	Indexer     string // Tracker that produced the item, when the indexer reports it
}

// Query describes a search request.
type Query struct {
	Term       string // Free text, used when IMDbID is empty
	IMDbID     string // e.g. "tt0133093"; selects a t=movie search
	Categories []int
	Limit      int
}

// NewClient creates a new Torznab client.
func NewClient(name, baseURL, apiKey string, log *slog.Logger) *Client {
	var clientLog *slog.Logger
	if log != nil {
		clientLog = log.With("component", "torznab", "indexer", name)
	}
	return &Client{
		name:    name,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: clientLog,
	}
}

// WithHTTPClient replaces the HTTP client, e.g. to change the timeout.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Name returns the indexer name.
func (c *Client) Name() string {
	return c.name
}

// Caps performs a capabilities request to test connectivity.
func (c *Client) Caps(ctx context.Context) error {
	params := url.Values{}
	params.Set("t", "caps")
	params.Set("apikey", c.apiKey)

	resp, err := c.get(ctx, params)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	return nil
}

type rssResponse struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title     string        `xml:"title"`
	GUID      string        `xml:"guid"`
	Link      string        `xml:"link"`
	Size      int64         `xml:"size"`
	PubDate   string        `xml:"pubDate"`
	JackettIx string        `xml:"jackettindexer"`
	Enclosure rssEnclosure  `xml:"enclosure"`
	Attrs     []torznabAttr `xml:"http://torznab.com/schemas/2015/feed attr"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
}

type torznabAttr struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// Search queries the indexer. An IMDb ID selects a movie search, otherwise
// a free text search on Term is made.
func (c *Client) Search(ctx context.Context, q Query) ([]Release, error) {
	start := time.Now()

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	if q.IMDbID != "" {
		params.Set("t", "movie")
		params.Set("imdbid", q.IMDbID)
	} else {
		params.Set("t", "search")
		params.Set("q", q.Term)
	}
	if len(q.Categories) > 0 {
		cats := make([]string, len(q.Categories))
		for i, cat := range q.Categories {
			cats[i] = strconv.Itoa(cat)
		}
		params.Set("cat", strings.Join(cats, ","))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	resp, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var rss rssResponse
	if err := xml.NewDecoder(resp.Body).Decode(&rss); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	releases := make([]Release, 0, len(rss.Channel.Items))
	for _, item := range rss.Channel.Items {
		releases = append(releases, item.release())
	}

	if c.log != nil {
		c.log.Debug("search complete", "t", params.Get("t"), "query", q.Term, "imdbid", q.IMDbID,
			"results", len(releases), "duration_ms", time.Since(start).Milliseconds())
	}
	return releases, nil
}

func (c *Client) get(ctx context.Context, params url.Values) (*http.Response, error) {
	reqURL, err := url.Parse(c.baseURL + "/api")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return resp, nil
}

func (item rssItem) release() Release {
	rel := Release{
		Title:       item.Title,
		GUID:        item.GUID,
		DownloadURL: item.Link,
		Indexer:     item.JackettIx,
	}

	if item.Enclosure.Length > 0 {
		rel.Size = item.Enclosure.Length
	} else if item.Size > 0 {
		rel.Size = item.Size
	}
	if rel.DownloadURL == "" {
		rel.DownloadURL = item.Enclosure.URL
	}

	if item.PubDate != "" {
		for _, format := range []string{time.RFC1123Z, time.RFC1123} {
			if t, err := time.Parse(format, item.PubDate); err == nil {
				rel.PublishDate = t
				break
			}
		}
	}

	for _, attr := range item.Attrs {
		switch attr.Name {
		case "seeders":
			rel.Seeders, _ = strconv.Atoi(attr.Value)
		case "peers":
			rel.Peers, _ = strconv.Atoi(attr.Value)
		case "imdbid", "imdb":
			rel.IMDbID = normalizeIMDbID(attr.Value)
		case "size":
			if rel.Size == 0 {
				rel.Size, _ = strconv.ParseInt(attr.Value, 10, 64)
			}
		}
	}
	return rel
}

// normalizeIMDbID adds the "tt" prefix indexers sometimes omit.
func normalizeIMDbID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.HasPrefix(id, "tt") {
		return id
	}
	return "tt" + id
}
