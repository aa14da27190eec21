package tmdb

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SearchMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/movie", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "Inception", r.URL.Query().Get("query"))
		assert.Equal(t, "2010", r.URL.Query().Get("year"))
		assert.Equal(t, "de", r.URL.Query().Get("language"))

		resp := searchResponse[MovieResult]{Results: []MovieResult{
			{ID: 27205, Title: "Inception", ReleaseDate: "2010-07-15"},
		}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	results, err := client.SearchMovie(context.Background(), "Inception", 2010, "de")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(27205), results[0].ID)
	assert.Equal(t, "2010", results[0].Year())
}

func TestClient_SearchTV_DefaultLanguage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/tv", r.URL.Path)
		assert.Equal(t, "fr", r.URL.Query().Get("language"))
		_, _ = w.Write([]byte(`{"results":[{"id":1396,"name":"Breaking Bad","first_air_date":"2008-01-20"}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithLanguage("fr"))

	results, err := client.SearchTV(context.Background(), "Breaking Bad", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Breaking Bad", results[0].Name)
	assert.Equal(t, "2008", results[0].Year())
}

func TestClient_GetMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/550", r.URL.Path)

		resp := Movie{
			ID:          550,
			Title:       "Fight Club",
			ReleaseDate: "1999-10-15",
			PosterPath:  "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
			Runtime:     139,
			Genres:      []Genre{{ID: 18, Name: "Drama"}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	movie, err := client.GetMovie(context.Background(), 550, "")
	require.NoError(t, err)
	assert.Equal(t, "Fight Club", movie.Title)
	assert.Equal(t, "1999", movie.Year())
	assert.Equal(t, []string{"Drama"}, GenreNames(movie.Genres))
}

func TestClient_GetEpisode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/tv/1396/season/1/episode/2", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":62086,"name":"Cat's in the Bag...","season_number":1,"episode_number":2}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	ep, err := client.GetEpisode(context.Background(), 1396, 1, 2, "")
	require.NoError(t, err)
	assert.Equal(t, "Cat's in the Bag...", ep.Name)
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusTooManyRequests, ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient("test-key", WithBaseURL(server.URL))

			movie, err := client.GetMovie(context.Background(), 1, "")
			assert.Nil(t, movie)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.SearchMovie(context.Background(), "x", 0, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_Cached(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(Movie{ID: 550, Title: "Fight Club"})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithCacheTTL(time.Hour))

	_, err := client.GetMovie(context.Background(), 550, "")
	require.NoError(t, err)
	_, err = client.GetMovie(context.Background(), 550, "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load(), "should use cache, not call API again")

	_, err = client.GetMovie(context.Background(), 550, "de")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "language is part of the cache key")
}

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func TestClient_StoreSurvivesNewClient(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(Movie{ID: 550, Title: "Fight Club"})
	}))
	defer server.Close()

	store := &memStore{data: map[string][]byte{}}

	first := NewClient("test-key", WithBaseURL(server.URL), WithStore(store, time.Hour))
	_, err := first.GetMovie(context.Background(), 550, "")
	require.NoError(t, err)

	second := NewClient("test-key", WithBaseURL(server.URL), WithStore(store, time.Hour))
	movie, err := second.GetMovie(context.Background(), 550, "")
	require.NoError(t, err)
	assert.Equal(t, "Fight Club", movie.Title)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_CircuitBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-key",
		WithBaseURL(server.URL),
		WithBreaker(BreakerSettings{MinRequests: 2, FailureRatio: 0.5, Interval: time.Minute, Timeout: time.Minute}),
	)

	ctx := context.Background()
	for range 2 {
		_, err := client.SearchMovie(ctx, "fail", 0, "")
		require.Error(t, err)
	}

	_, err := client.SearchMovie(ctx, "fail", 0, "")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load(), "open breaker must not reach upstream")
}

func TestClient_NotFoundDoesNotTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("test-key",
		WithBaseURL(server.URL),
		WithBreaker(BreakerSettings{MinRequests: 1, FailureRatio: 0.1, Interval: time.Minute, Timeout: time.Minute}),
	)

	for i := range 3 {
		_, err := client.GetMovie(context.Background(), int64(i), "")
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestClient_DownloadImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/w500/poster.jpg", r.URL.Path)
		_, _ = w.Write([]byte("JPEGDATA"))
	}))
	defer server.Close()

	client := NewClient("test-key", WithImageBaseURL(server.URL))

	var buf bytes.Buffer
	n, err := client.DownloadImage(context.Background(), "/poster.jpg", "w500", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
	assert.Equal(t, "JPEGDATA", buf.String())

	_, err = client.DownloadImage(context.Background(), "", "w500", &buf)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_ImageURL(t *testing.T) {
	client := NewClient("k")
	assert.Equal(t, "https://image.tmdb.org/t/p/w342/a.jpg", client.ImageURL("/a.jpg", "w342"))
	assert.Empty(t, client.ImageURL("", "w342"))
}
