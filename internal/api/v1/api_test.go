package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/kinoscout/internal/api/v1/mocks"
	"github.com/vmunix/kinoscout/internal/kinopoisk"
	"github.com/vmunix/kinoscout/internal/sources"
	"go.uber.org/mock/gomock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testServer struct {
	resolver *mocks.MockResolver
	finder   *mocks.MockFinder
	mux      *http.ServeMux
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)
	ts := &testServer{
		resolver: mocks.NewMockResolver(ctrl),
		finder:   mocks.NewMockFinder(ctrl),
		mux:      http.NewServeMux(),
	}
	srv, err := NewWithDeps(ServerDeps{Resolver: ts.resolver, Finder: ts.finder}, Config{Version: "test"}, testLogger())
	require.NoError(t, err)
	srv.RegisterRoutes(ts.mux)
	return ts
}

func (ts *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	ts.mux.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

var matrix = &kinopoisk.Film{
	KinopoiskID:     301,
	IMDbID:          "tt0133093",
	NameRu:          "Матрица",
	NameOriginal:    "The Matrix",
	Year:            1999,
	RatingAgeLimits: "age16",
	Genres:          []kinopoisk.Genre{{Genre: "фантастика"}},
}

func TestNewWithDeps_Validation(t *testing.T) {
	_, err := NewWithDeps(ServerDeps{}, Config{}, nil)
	assert.ErrorIs(t, err, ErrMissingDependency)

	ctrl := gomock.NewController(t)
	_, err = NewWithDeps(ServerDeps{Resolver: mocks.NewMockResolver(ctrl)}, Config{}, nil)
	assert.ErrorIs(t, err, ErrMissingDependency)
}

func TestSearch(t *testing.T) {
	ts := newTestServer(t)
	ts.resolver.EXPECT().SearchByKeyword(gomock.Any(), "matrix").Return([]kinopoisk.FilmSummary{
		{FilmID: 301, NameRu: "Матрица", Year: 1999, Type: "FILM", Rating: "8.5"},
		{FilmID: 302, NameEn: "The Matrix Reloaded", Year: 2003},
	}, nil)

	w := ts.get(t, "/api/v1/search?q=matrix")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[searchResponse](t, w)
	assert.Equal(t, "matrix", resp.Query)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, filmSummaryResponse{ID: 301, Title: "Матрица", Year: 1999, Type: "FILM", Rating: "8.5"}, resp.Items[0])
	assert.Equal(t, "The Matrix Reloaded", resp.Items[1].Title)
}

func TestSearch_Empty(t *testing.T) {
	ts := newTestServer(t)
	ts.resolver.EXPECT().SearchByKeyword(gomock.Any(), "zzz").Return(nil, nil)

	w := ts.get(t, "/api/v1/search?q=zzz")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"query":"zzz","items":[],"total":0}`, w.Body.String())
}

func TestSearch_MissingQuery(t *testing.T) {
	ts := newTestServer(t)

	w := ts.get(t, "/api/v1/search?q=%20")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode[errorResponse](t, w).Code)
}

func TestSearch_ResolverErrors(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantErr  string
	}{
		{kinopoisk.ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMITED"},
		{kinopoisk.ErrUnauthorized, http.StatusBadGateway, "UPSTREAM_ERROR"},
		{errors.New("connection reset"), http.StatusBadGateway, "UPSTREAM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.wantErr, func(t *testing.T) {
			ts := newTestServer(t)
			ts.resolver.EXPECT().SearchByKeyword(gomock.Any(), "x").Return(nil, tt.err)

			w := ts.get(t, "/api/v1/search?q=x")

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantErr, decode[errorResponse](t, w).Code)
		})
	}
}

func TestGetFilm(t *testing.T) {
	ts := newTestServer(t)
	ts.resolver.EXPECT().GetFilm(gomock.Any(), int64(301)).Return(matrix, nil)
	ts.resolver.EXPECT().TrailerURL(gomock.Any(), int64(301)).Return("https://youtube.example/t", nil)

	w := ts.get(t, "/api/v1/films/301")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[filmResponse](t, w)
	assert.Equal(t, int64(301), resp.ID)
	assert.Equal(t, "Матрица", resp.Title)
	assert.Equal(t, "The Matrix", resp.OriginalTitle)
	assert.Equal(t, 16, resp.AgeLimit)
	assert.Equal(t, []string{"фантастика"}, resp.Genres)
	assert.Empty(t, resp.Countries)
	assert.Equal(t, "https://youtube.example/t", resp.TrailerURL)
}

func TestGetFilm_TrailerFailureIgnored(t *testing.T) {
	ts := newTestServer(t)
	ts.resolver.EXPECT().GetFilm(gomock.Any(), int64(301)).Return(matrix, nil)
	ts.resolver.EXPECT().TrailerURL(gomock.Any(), int64(301)).Return("", errors.New("boom"))

	w := ts.get(t, "/api/v1/films/301")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[filmResponse](t, w).TrailerURL)
}

func TestGetFilm_NotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.resolver.EXPECT().GetFilm(gomock.Any(), int64(9)).Return(nil, kinopoisk.ErrNotFound)

	w := ts.get(t, "/api/v1/films/9")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetFilm_InvalidID(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/v1/films/abc", "/api/v1/films/0", "/api/v1/films/-4"} {
		w := ts.get(t, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestGetSources(t *testing.T) {
	ts := newTestServer(t)
	ts.resolver.EXPECT().GetFilm(gomock.Any(), int64(301)).Return(matrix, nil)
	ts.finder.EXPECT().FindSources(gomock.Any(), matrix.Movie()).Return(sources.Aggregate{
		Results: []sources.Result{
			{Provider: "Kodik", Payload: sources.TranslationSet{{Label: "Dub", Quality: "1080p"}}},
		},
		Outcomes: []sources.Outcome{
			{Provider: "Kodik", Status: sources.StatusFound, Duration: 120 * time.Millisecond},
			{Provider: "Rutor", Status: sources.StatusFailed, Duration: 40 * time.Millisecond,
				Failure: &sources.Failure{Provider: "Rutor", Cause: sources.CauseNetwork, Err: errors.New("connection refused")}},
			{Provider: "Library", Status: sources.StatusNotFound},
		},
	})

	w := ts.get(t, "/api/v1/films/301/sources")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[sourcesResponse](t, w)
	assert.Equal(t, int64(301), resp.FilmID)
	assert.False(t, resp.Sources.Empty)
	require.Len(t, resp.Sources.Groups, 1)
	assert.Equal(t, sources.KindTranslations, resp.Sources.Groups[0].Kind)
	assert.Equal(t, []outcomeResponse{
		{Provider: "Kodik", Status: "found", DurationMs: 120},
		{Provider: "Rutor", Status: "failed", Cause: "network", Error: "connection refused", DurationMs: 40},
		{Provider: "Library", Status: "not_found"},
	}, resp.Outcomes)
}

func TestGetSources_NothingFound(t *testing.T) {
	ts := newTestServer(t)
	ts.resolver.EXPECT().GetFilm(gomock.Any(), int64(301)).Return(matrix, nil)
	ts.finder.EXPECT().FindSources(gomock.Any(), gomock.Any()).Return(sources.Aggregate{})

	w := ts.get(t, "/api/v1/films/301/sources")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[sourcesResponse](t, w)
	assert.True(t, resp.Sources.Empty)
	assert.Equal(t, sources.NoSourcesNotice, resp.Sources.Notice)
	assert.Empty(t, resp.Outcomes)
}

func TestListProviders(t *testing.T) {
	ts := newTestServer(t)
	ts.finder.EXPECT().Providers().Return([]string{"Kodik", "Rutor"})

	w := ts.get(t, "/api/v1/providers")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"providers":["Kodik","Rutor"]}`, w.Body.String())
}

func TestGetStatus(t *testing.T) {
	ts := newTestServer(t)
	ts.finder.EXPECT().Providers().Return([]string{"Kodik"})

	w := ts.get(t, "/api/v1/status")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok","version":"test","providers":1}`, w.Body.String())
}

func TestLogRequests(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	h := LogRequests(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), log)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	assert.Contains(t, buf.String(), "path=/api/v1/status")
	assert.Contains(t, buf.String(), "status=418")
}

func TestGetStatus_Checks(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := mocks.NewMockFinder(ctrl)
	finder.EXPECT().Providers().Return([]string{"Torznab", "Library"})

	srv, err := NewWithDeps(ServerDeps{
		Resolver: mocks.NewMockResolver(ctrl),
		Finder:   finder,
		Checks: []HealthCheck{
			{Name: "Library", Check: func(context.Context) error { return nil }},
			{Name: "Torznab", Check: func(context.Context) error { return errors.New("connection refused") }},
		},
	}, Config{Version: "test"}, testLogger())
	require.NoError(t, err)
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"status": "degraded",
		"version": "test",
		"providers": 2,
		"checks": [
			{"name": "Library", "status": "ok"},
			{"name": "Torznab", "status": "error", "error": "connection refused"}
		]
	}`, w.Body.String())
}
