package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/vmunix/renamarr/internal/metrics"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"
	defaultCacheTTL     = 24 * time.Hour
	defaultRateLimit    = 20 // TMDB allows roughly 40-50 req/s per IP
	defaultLanguage     = "en"
)

// Sentinel errors for TMDB responses.
var (
	ErrNotFound     = errors.New("not found in TMDB")
	ErrUnauthorized = errors.New("TMDB rejected the API key")
	ErrRateLimited  = errors.New("TMDB rate limit exceeded")
	ErrCircuitOpen  = errors.New("TMDB temporarily unavailable")
)

// Client is a TMDB API v3 client. Requests are rate limited, cached, and
// guarded by a circuit breaker.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	httpClient   *http.Client
	cache        *cache
	store        Store
	storeTTL     time.Duration
	limiter      *rate.Limiter
	breakerCfg   BreakerSettings
	breaker      *gobreaker.CircuitBreaker[[]byte]
	log          *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithImageBaseURL sets a custom image CDN base URL (for testing).
func WithImageBaseURL(url string) Option {
	return func(c *Client) {
		c.imageBaseURL = url
	}
}

// WithCacheTTL sets the in-memory cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newCache(ttl)
	}
}

// WithStore adds a persistent second-level cache.
func WithStore(s Store, ttl time.Duration) Option {
	return func(c *Client) {
		c.store = s
		c.storeTTL = ttl
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLanguage sets the default metadata language (ISO 639-1).
func WithLanguage(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.language = lang
		}
	}
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(qps float64) Option {
	return func(c *Client) {
		if qps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(qps), max(int(qps), 1))
		}
	}
}

// WithBreaker overrides the circuit breaker settings.
func WithBreaker(st BreakerSettings) Option {
	return func(c *Client) {
		c.breakerCfg = st
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "tmdb")
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		imageBaseURL: defaultImageBaseURL,
		language:     defaultLanguage,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache:      newCache(defaultCacheTTL),
		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateLimit),
		breakerCfg: DefaultBreakerSettings(),
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = newBreaker("tmdb", c.breakerCfg, c.log)
	return c
}

// SearchMovie searches movies by title, optionally narrowed to a release year.
func (c *Client) SearchMovie(ctx context.Context, query string, year int, lang string) ([]MovieResult, error) {
	params := url.Values{"query": {query}}
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}
	var resp searchResponse[MovieResult]
	if err := c.get(ctx, "search/movie", "/3/search/movie", params, lang, &resp); err != nil {
		return nil, fmt.Errorf("search movie %q: %w", query, err)
	}
	return resp.Results, nil
}

// SearchTV searches series by name.
func (c *Client) SearchTV(ctx context.Context, query string, lang string) ([]TVResult, error) {
	params := url.Values{"query": {query}}
	var resp searchResponse[TVResult]
	if err := c.get(ctx, "search/tv", "/3/search/tv", params, lang, &resp); err != nil {
		return nil, fmt.Errorf("search tv %q: %w", query, err)
	}
	return resp.Results, nil
}

// GetMovie fetches movie metadata by TMDB ID.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64, lang string) (*Movie, error) {
	var movie Movie
	if err := c.get(ctx, "movie", fmt.Sprintf("/3/movie/%d", tmdbID), nil, lang, &movie); err != nil {
		return nil, fmt.Errorf("get movie %d: %w", tmdbID, err)
	}
	return &movie, nil
}

// GetTV fetches series metadata by TMDB ID.
func (c *Client) GetTV(ctx context.Context, tmdbID int64, lang string) (*TVShow, error) {
	var show TVShow
	if err := c.get(ctx, "tv", fmt.Sprintf("/3/tv/%d", tmdbID), nil, lang, &show); err != nil {
		return nil, fmt.Errorf("get tv %d: %w", tmdbID, err)
	}
	return &show, nil
}

// GetEpisode fetches a single episode of a series.
func (c *Client) GetEpisode(ctx context.Context, tmdbID int64, season, episode int, lang string) (*Episode, error) {
	endpoint := fmt.Sprintf("/3/tv/%d/season/%d/episode/%d", tmdbID, season, episode)
	var ep Episode
	if err := c.get(ctx, "episode", endpoint, nil, lang, &ep); err != nil {
		return nil, fmt.Errorf("get episode %d S%02dE%02d: %w", tmdbID, season, episode, err)
	}
	return &ep, nil
}

// ImageURL returns the CDN URL of an image path at the given size
// (w92, w154, w185, w342, w500, w780, original).
func (c *Client) ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + "/" + size + path
}

// DownloadImage streams an image to w and returns the bytes written.
// Image downloads are neither cached nor counted by the breaker.
func (c *Client) DownloadImage(ctx context.Context, path, size string, w io.Writer) (int64, error) {
	if path == "" {
		return 0, ErrNotFound
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ImageURL(path, size), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return 0, err
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("copy image: %w", err)
	}
	return n, nil
}

// PurgeCache drops expired in-memory entries.
func (c *Client) PurgeCache() int {
	return c.cache.purge()
}

// get resolves a request from cache or upstream and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, name, endpoint string, params url.Values, lang string, out any) error {
	if params == nil {
		params = url.Values{}
	}
	if lang == "" {
		lang = c.language
	}
	params.Set("language", lang)

	key := endpoint + "?" + params.Encode()
	body, err := c.cached(ctx, key)
	if err != nil {
		return err
	}
	if body == nil {
		body, err = c.fetch(ctx, name, endpoint, params)
		if err != nil {
			return err
		}
		c.cache.set(key, body)
		if c.store != nil {
			if err := c.store.Set(ctx, "tmdb:"+key, body, c.storeTTL); err != nil {
				c.log.Warn("failed to persist response", "key", key, "error", err)
			}
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) cached(ctx context.Context, key string) ([]byte, error) {
	if body, ok := c.cache.get(key); ok {
		metrics.UpstreamCacheHits.WithLabelValues("tmdb", "memory").Inc()
		return body, nil
	}
	if c.store == nil {
		return nil, nil
	}
	if body, ok := c.store.Get(ctx, "tmdb:"+key); ok {
		metrics.UpstreamCacheHits.WithLabelValues("tmdb", "sqlite").Inc()
		c.cache.set(key, body)
		return body, nil
	}
	return nil, nil
}

func (c *Client) fetch(ctx context.Context, name, endpoint string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, endpoint, params)
	})
	metrics.RecordUpstream("tmdb", name, time.Since(start), err)

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	if err != nil {
		return nil, err
	}

	c.log.Debug("fetched", "endpoint", endpoint, "duration_ms", time.Since(start).Milliseconds())
	return body, nil
}

func (c *Client) do(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	q := url.Values{"api_key": {c.apiKey}}
	for k, v := range params {
		q[k] = v
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func checkStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}
}
