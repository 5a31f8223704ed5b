package videocdn

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/kinoscout/internal/sources"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{Token: "tok", BaseURL: server.URL}, testLogger())
}

func TestProvider_Locate(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/short", r.URL.Path)
		assert.Equal(t, "tok", r.URL.Query().Get("api_token"))
		assert.Equal(t, "301", r.URL.Query().Get("kinopoisk_id"))
		_, _ = w.Write([]byte(`{"result": true, "data": [
			{"title": "Матрица", "quality": "hddvd", "iframe_src": "//videocdn.example/movie/1"},
			{"title": "Матрица", "quality": "camrip", "iframe_src": "https://videocdn.example/movie/2"},
			{"title": "Матрица", "quality": "4K", "iframe_src": ""}
		]}`))
	})

	payload, err := p.Locate(context.Background(), sources.Movie{KinopoiskID: 301})
	require.NoError(t, err)
	assert.Equal(t, sources.StreamSet{
		{Quality: "1080p", URL: "https://videocdn.example/movie/1"},
		{Quality: "CAM", URL: "https://videocdn.example/movie/2"},
		{Quality: "4K"},
	}, payload)
}

func TestProvider_Locate_IMDbFallback(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tt0133093", r.URL.Query().Get("imdb_id"))
		_, _ = w.Write([]byte(`{"result": true, "data": [{"quality": "hdrip"}]}`))
	})

	payload, err := p.Locate(context.Background(), sources.Movie{IMDbID: "tt0133093"})
	require.NoError(t, err)
	assert.Equal(t, sources.StreamSet{{Quality: "720p"}}, payload)
}

func TestProvider_Locate_NotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"result false", `{"result": false}`},
		{"no data", `{"result": true, "data": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := p.Locate(context.Background(), sources.Movie{KinopoiskID: 301})
			assert.ErrorIs(t, err, sources.ErrNotFound)
		})
	}

	t.Run("no token", func(t *testing.T) {
		_, err := New(Config{}, testLogger()).Locate(context.Background(), sources.Movie{KinopoiskID: 301})
		assert.ErrorIs(t, err, sources.ErrNotFound)
	})
}

func TestProvider_Locate_Failures(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"result": false, "error": "wrong api_token"}`))
		})
		_, err := p.Locate(context.Background(), sources.Movie{KinopoiskID: 301})
		require.Error(t, err)
		assert.Equal(t, sources.CauseProtocol, sources.Classify(err))
		assert.Contains(t, err.Error(), "wrong api_token")
	})

	t.Run("wrong type", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"result": "yes"}`))
		})
		_, err := p.Locate(context.Background(), sources.Movie{KinopoiskID: 301})
		require.Error(t, err)
		assert.Equal(t, sources.CauseDecode, sources.Classify(err))
	})
}

func TestNormalizeQuality(t *testing.T) {
	assert.Equal(t, "1080p", normalizeQuality("BluRay"))
	assert.Equal(t, "SD", normalizeQuality(" dvdrip "))
	assert.Equal(t, "4K", normalizeQuality("4K"))
}
