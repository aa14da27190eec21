package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/vmunix/renamarr/pkg/tvdb"
)

const (
	episodeTTL = 24 * time.Hour
	searchTTL  = time.Hour
)

const (
	keyPrefixSearch   = "tvdb:search:"
	keyPrefixEpisodes = "tvdb:episodes:"
)

// TVDBService provides cached access to TVDB series data.
type TVDBService struct {
	client *tvdb.Client
	cache  *Cache
	log    *slog.Logger
}

// NewTVDBService creates a new TVDB service. cache may be nil.
func NewTVDBService(client *tvdb.Client, cache *Cache, log *slog.Logger) *TVDBService {
	return &TVDBService{
		client: client,
		cache:  cache,
		log:    log.With("component", "tvdb-cache"),
	}
}

// Search searches for series by name (cached).
func (s *TVDBService) Search(ctx context.Context, query string) ([]tvdb.SearchResult, error) {
	results, err := cachedFetch(ctx, s, keyPrefixSearch+query, searchTTL, func() ([]tvdb.SearchResult, error) {
		return s.client.Search(ctx, query)
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return results, nil
}

// GetEpisodes fetches all episodes for a series (cached).
func (s *TVDBService) GetEpisodes(ctx context.Context, seriesID int) ([]tvdb.Episode, error) {
	key := keyPrefixEpisodes + strconv.Itoa(seriesID)
	episodes, err := cachedFetch(ctx, s, key, episodeTTL, func() ([]tvdb.Episode, error) {
		return s.client.GetEpisodes(ctx, seriesID)
	})
	if err != nil {
		return nil, fmt.Errorf("get episodes: %w", err)
	}
	return episodes, nil
}

// cachedFetch serves key from the cache or calls fetch and stores the result.
// Cache failures are logged and never fail the lookup.
func cachedFetch[T any](ctx context.Context, s *TVDBService, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, key); ok {
			var v T
			err := json.Unmarshal(data, &v)
			if err == nil {
				s.log.Debug("cache hit", "key", key)
				return v, nil
			}
			s.log.Warn("dropping unreadable cache entry", "key", key, "error", err)
			_ = s.cache.Delete(ctx, key)
		}
	}

	v, err := fetch()
	if err != nil || s.cache == nil {
		return v, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("failed to marshal value for cache", "key", key, "error", err)
		return v, nil
	}
	if err := s.cache.Set(ctx, key, data, ttl); err != nil {
		s.log.Warn("failed to cache value", "key", key, "error", err)
	}
	return v, nil
}
