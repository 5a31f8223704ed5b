package kinopoisk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/kinoscout/internal/sources"
)

const filmJSON = `{
  "kinopoiskId": 301,
  "imdbId": "tt0133093",
  "nameRu": "Матрица",
  "nameEn": null,
  "nameOriginal": "The Matrix",
  "posterUrl": "https://kinopoiskapiunofficial.tech/images/posters/kp/301.jpg",
  "ratingKinopoisk": 8.5,
  "ratingImdb": 8.7,
  "webUrl": "https://www.kinopoisk.ru/film/301/",
  "year": 1999,
  "filmLength": 136,
  "slogan": "Добро пожаловать в реальный мир",
  "description": "Жизнь Томаса Андерсона разделена на две части.",
  "type": "FILM",
  "ratingAgeLimits": "age16",
  "countries": [{"country": "США"}],
  "genres": [{"genre": "фантастика"}, {"genre": "боевик"}]
}`

const searchJSON = `{
  "keyword": "матрица",
  "pagesCount": 1,
  "films": [
    {"filmId": 301, "nameRu": "Матрица", "nameEn": "The Matrix", "type": "FILM", "year": "1999", "rating": "8.5"},
    {"filmId": 298, "nameRu": "Матрица: Перезагрузка", "type": "FILM", "year": "2003"},
    {"filmId": 1, "nameEn": "The Matrix Experiment", "type": "TV_SERIES", "year": "2019-2020"},
    {"filmId": 2, "type": "FILM", "year": "null"}
  ],
  "searchFilmsCountResult": 4
}`

func TestClient_SearchByKeyword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2.1/films/search-by-keyword", r.URL.Path)
		assert.Equal(t, "матрица", r.URL.Query().Get("keyword"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		_, _ = w.Write([]byte(searchJSON))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	films, err := client.SearchByKeyword(context.Background(), " матрица ")
	require.NoError(t, err)
	require.Len(t, films, 4)

	assert.Equal(t, int64(301), films[0].FilmID)
	assert.Equal(t, Year(1999), films[0].Year)
	assert.Equal(t, "Матрица", films[0].DisplayName())
	assert.Equal(t, Year(2019), films[2].Year)
	assert.Equal(t, "The Matrix Experiment", films[2].DisplayName())
	assert.Equal(t, Year(0), films[3].Year)
	assert.Equal(t, "Unknown", films[3].DisplayName())
}

func TestClient_SearchByKeyword_Empty(t *testing.T) {
	client := NewClient("test-key", WithBaseURL("http://127.0.0.1:1"))

	films, err := client.SearchByKeyword(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, films)
}

func TestClient_GetFilm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2.2/films/301", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(filmJSON))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	film, err := client.GetFilm(context.Background(), 301)
	require.NoError(t, err)
	assert.Equal(t, "Матрица", film.Title())
	assert.Equal(t, "The Matrix", film.OriginalTitle())
	assert.Equal(t, Year(1999), film.Year)
	assert.Equal(t, 136, film.FilmLength)
	assert.Equal(t, 16, film.AgeLimit())
	assert.Equal(t, []string{"фантастика", "боевик"}, film.GenreNames())
	assert.Equal(t, []string{"США"}, film.CountryNames())

	assert.Equal(t, sources.Movie{
		KinopoiskID:   301,
		IMDbID:        "tt0133093",
		Title:         "Матрица",
		OriginalTitle: "The Matrix",
		Year:          1999,
	}, film.Movie())
}

func TestClient_GetFilm_Cached(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(filmJSON))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithCacheTTL(time.Hour))

	_, err := client.GetFilm(context.Background(), 301)
	require.NoError(t, err)
	_, err = client.GetFilm(context.Background(), 301)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load(), "should use cache, not call API again")
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"quota exhausted", http.StatusPaymentRequired, ErrRateLimited},
		{"too many requests", http.StatusTooManyRequests, ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient("test-key", WithBaseURL(server.URL))
			film, err := client.GetFilm(context.Background(), 999)
			assert.Nil(t, film)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewClient("k", WithBaseURL(server.URL)).SearchByKeyword(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})
}

func TestClient_TrailerURL(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/api/v2.2/films/301/videos":
			_, _ = w.Write([]byte(`{"total": 3, "items": [
				{"url": "https://widgets.kinopoisk.ru/1", "name": "Trailer", "site": "KINOPOISK_WIDGET"},
				{"url": "https://www.youtube.com/watch?v=vKQi3bBA1y8", "name": "Trailer", "site": "YOUTUBE"},
				{"url": "https://youtu.be/other", "name": "Teaser", "site": "YOUTUBE"}
			]}`))
		case "/api/v2.2/films/2/videos":
			_, _ = w.Write([]byte(`{"total": 0, "items": []}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	url, err := client.TrailerURL(context.Background(), 301)
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/watch?v=vKQi3bBA1y8", url)

	url, err = client.TrailerURL(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, url)

	// Films without trailers are cached too.
	_, _ = client.TrailerURL(context.Background(), 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFilm_TitleFallbacks(t *testing.T) {
	f := &Film{NameOriginal: "Léon"}
	assert.Equal(t, "Léon", f.Title())
	assert.Empty(t, f.OriginalTitle(), "no second title when only one name exists")

	f = &Film{NameEn: "Brother"}
	assert.Equal(t, "Brother", f.Title())
	assert.Equal(t, 0, f.AgeLimit())
}
