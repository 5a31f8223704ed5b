package kodik

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/kinoscout/internal/sources"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const searchJSON = `{
  "time": "3ms",
  "total": 3,
  "results": [
    {"title": "Матрица", "quality": "BDRip 1080p", "translation": {"id": 610, "title": "Дубляж", "type": "voice"}},
    {"title": "Матрица", "quality": "BDRip 720p", "translation": {"id": 704, "title": "Гоблин", "type": "voice"}},
    {"title": "Матрица", "quality": "WEB-DL 1080p", "translation": {"id": 869, "title": "English", "type": "subtitles"}}
  ]
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{Token: "test-token", BaseURL: server.URL}, testLogger())
}

func TestProvider_Locate(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))
		assert.Equal(t, "301", r.URL.Query().Get("kinopoisk_id"))
		assert.Empty(t, r.URL.Query().Get("imdb_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchJSON))
	})

	payload, err := p.Locate(context.Background(), sources.Movie{KinopoiskID: 301, IMDbID: "tt0133093"})
	require.NoError(t, err)

	assert.Equal(t, sources.TranslationSet{
		{Label: "Дубляж", Quality: "BDRip 1080p"},
		{Label: "Гоблин", Quality: "BDRip 720p"},
		{Label: "English (subtitles)", Quality: "WEB-DL 1080p"},
	}, payload)
}

func TestProvider_Locate_IMDbFallback(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("kinopoisk_id"))
		assert.Equal(t, "tt0133093", r.URL.Query().Get("imdb_id"))
		_, _ = w.Write([]byte(searchJSON))
	})

	payload, err := p.Locate(context.Background(), sources.Movie{IMDbID: "tt0133093"})
	require.NoError(t, err)
	assert.Equal(t, 3, payload.Len())
}

func TestProvider_Locate_NotFound(t *testing.T) {
	t.Run("no results", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"total": 0, "results": []}`))
		})
		_, err := p.Locate(context.Background(), sources.Movie{KinopoiskID: 1})
		assert.ErrorIs(t, err, sources.ErrNotFound)
	})

	t.Run("no identifier", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})
		_, err := p.Locate(context.Background(), sources.Movie{Title: "Матрица"})
		assert.ErrorIs(t, err, sources.ErrNotFound)
	})

	t.Run("no token", func(t *testing.T) {
		p := New(Config{BaseURL: "http://127.0.0.1:1"}, testLogger())
		_, err := p.Locate(context.Background(), sources.Movie{KinopoiskID: 1})
		assert.ErrorIs(t, err, sources.ErrNotFound)
	})
}

func TestProvider_Locate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		cause   sources.Cause
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			cause: sources.CauseProtocol,
		},
		{
			name: "invalid token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
			cause: sources.CauseProtocol,
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"results": [`))
			},
			cause: sources.CauseDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, tt.handler)
			_, err := p.Locate(context.Background(), sources.Movie{KinopoiskID: 301})
			require.Error(t, err)
			assert.NotErrorIs(t, err, sources.ErrNotFound)
			assert.Equal(t, tt.cause, sources.Classify(err))
		})
	}
}

func TestProvider_Locate_ContextCancelled(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Locate(ctx, sources.Movie{KinopoiskID: 301})
	require.Error(t, err)
	assert.Equal(t, sources.CauseTimeout, sources.Classify(err))
}

func TestNew_Defaults(t *testing.T) {
	p := New(Config{Token: "t", Timeout: 3 * time.Second}, nil)
	assert.Equal(t, DefaultBaseURL, p.baseURL)
	assert.Equal(t, Name, p.Name())
	assert.Equal(t, 3*time.Second, p.Timeout())
}
