package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/renamarr/pkg/tvdb"
)

// mockTVDBServer simulates the login, search and episodes endpoints and counts upstream calls.
func mockTVDBServer(t *testing.T, searches, episodes *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","data":{"token":"jwt"}}`))
	})
	mux.HandleFunc("GET /search", func(w http.ResponseWriter, r *http.Request) {
		searches.Add(1)
		_, _ = w.Write([]byte(`{"data":[{"tvdb_id":"81189","name":"Breaking Bad","year":"2008"}]}`))
	})
	mux.HandleFunc("GET /series/81189/episodes/default", func(w http.ResponseWriter, r *http.Request) {
		episodes.Add(1)
		_, _ = w.Write([]byte(`{"data":{"episodes":[
			{"id":1,"seasonNumber":1,"number":1,"name":"Pilot","aired":"2008-01-20"},
			{"id":2,"seasonNumber":1,"number":2,"name":"Cat's in the Bag..."}
		]},"links":{"next":null}}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestTVDBService_SearchCached(t *testing.T) {
	var searches, episodes atomic.Int32
	server := mockTVDBServer(t, &searches, &episodes)

	db := setupTestDB(t)
	svc := NewTVDBService(tvdb.New("key", tvdb.WithBaseURL(server.URL)), NewCache(db), testLogger())
	ctx := context.Background()

	first, err := svc.Search(ctx, "Breaking Bad")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 81189, first[0].ID)

	second, err := svc.Search(ctx, "Breaking Bad")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), searches.Load(), "second search served from cache")
}

func TestTVDBService_EpisodesCached(t *testing.T) {
	var searches, episodes atomic.Int32
	server := mockTVDBServer(t, &searches, &episodes)

	db := setupTestDB(t)
	svc := NewTVDBService(tvdb.New("key", tvdb.WithBaseURL(server.URL)), NewCache(db), testLogger())
	ctx := context.Background()

	eps, err := svc.GetEpisodes(ctx, 81189)
	require.NoError(t, err)
	require.Len(t, eps, 2)

	eps, err = svc.GetEpisodes(ctx, 81189)
	require.NoError(t, err)
	require.Len(t, eps, 2)
	assert.Equal(t, int32(1), episodes.Load())

	ep := tvdb.FindEpisode(eps, 1, 1)
	require.NotNil(t, ep)
	assert.Equal(t, 2008, ep.AirDate.Year(), "air date survives the cache round trip")
}

func TestTVDBService_NilCache(t *testing.T) {
	var searches, episodes atomic.Int32
	server := mockTVDBServer(t, &searches, &episodes)

	svc := NewTVDBService(tvdb.New("key", tvdb.WithBaseURL(server.URL)), nil, testLogger())
	ctx := context.Background()

	for range 2 {
		_, err := svc.Search(ctx, "Breaking Bad")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), searches.Load())
}

func TestTVDBService_ErrorNotCached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			_, _ = w.Write([]byte(`{"data":{"token":"jwt"}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	db := setupTestDB(t)
	cache := NewCache(db)
	svc := NewTVDBService(tvdb.New("key", tvdb.WithBaseURL(server.URL)), cache, testLogger())

	_, err := svc.GetEpisodes(context.Background(), 7)
	require.ErrorIs(t, err, tvdb.ErrNotFound)

	_, ok := cache.Get(context.Background(), keyPrefixEpisodes+"7")
	assert.False(t, ok)
}

func TestTVDBService_CorruptCacheEntryRefetched(t *testing.T) {
	var searches, episodes atomic.Int32
	server := mockTVDBServer(t, &searches, &episodes)

	cache := NewCache(setupTestDB(t))
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, keyPrefixEpisodes+"81189", []byte("not json"), time.Hour))

	svc := NewTVDBService(tvdb.New("key", tvdb.WithBaseURL(server.URL)), cache, testLogger())
	eps, err := svc.GetEpisodes(ctx, 81189)
	require.NoError(t, err)
	assert.Len(t, eps, 2)
	assert.Equal(t, int32(1), episodes.Load())

	data, ok := cache.Get(ctx, keyPrefixEpisodes+"81189")
	require.True(t, ok)
	assert.Contains(t, string(data), "Pilot")
}
