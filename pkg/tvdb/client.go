package tvdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api4.thetvdb.com/v4"
	maxPages       = 100
)

// Sentinel errors for TVDB API responses.
var (
	ErrNotFound     = errors.New("series not found")
	ErrUnauthorized = errors.New("unauthorized: invalid or expired API key")
	ErrRateLimited  = errors.New("rate limited: too many requests")
)

// Client is a TVDB API v4 client. It logs in lazily and refreshes the JWT once on 401.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
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

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "tvdb")
	}
}

// New creates a new TVDB API v4 client.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Inf, 1),
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search searches for series by name.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	var resp envelope[[]searchHit]
	if err := c.getJSON(ctx, "/search?query="+url.QueryEscape(query)+"&type=series", &resp); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(resp.Data))
	for _, hit := range resp.Data {
		results = append(results, hit.result())
	}

	c.log.Debug("search completed", "query", query, "results", len(results))
	return results, nil
}

// GetSeries fetches series metadata by TVDB ID.
func (c *Client) GetSeries(ctx context.Context, id int) (*Series, error) {
	var resp envelope[seriesRecord]
	if err := c.getJSON(ctx, fmt.Sprintf("/series/%d", id), &resp); err != nil {
		return nil, err
	}
	return resp.Data.series(), nil
}

// GetEpisodes fetches every episode of a series, following pagination.
func (c *Client) GetEpisodes(ctx context.Context, seriesID int) ([]Episode, error) {
	var all []Episode
	for page := 0; page < maxPages; page++ {
		var resp envelope[episodePage]
		endpoint := fmt.Sprintf("/series/%d/episodes/default?page=%d", seriesID, page)
		if err := c.getJSON(ctx, endpoint, &resp); err != nil {
			return nil, err
		}

		for _, rec := range resp.Data.Episodes {
			all = append(all, rec.episode())
		}
		if !resp.hasNext() {
			break
		}
	}

	c.log.Debug("fetched episodes", "series_id", seriesID, "count", len(all))
	return all, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("TVDB API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}

// doRequest performs an authenticated GET, re-authenticating once on 401.
func (c *Client) doRequest(ctx context.Context, endpoint string) (*http.Response, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, endpoint)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	resp.Body.Close()

	c.log.Debug("token expired, refreshing")
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	if err := c.login(ctx); err != nil {
		return nil, err
	}
	return c.send(ctx, endpoint)
}

func (c *Client) send(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.mu.RLock()
	req.Header.Set("Authorization", "Bearer "+c.token)
	c.mu.RUnlock()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

func (c *Client) ensureToken(ctx context.Context) error {
	c.mu.RLock()
	has := c.token != ""
	c.mu.RUnlock()
	if has {
		return nil
	}
	return c.login(ctx)
}

func (c *Client) login(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{"apikey": c.apiKey})
	if err != nil {
		return fmt.Errorf("marshal login body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed: %s", resp.Status)
	}

	var lr envelope[loginData]
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}
	if lr.Data.Token == "" {
		return errors.New("login response missing token")
	}

	c.mu.Lock()
	c.token = lr.Data.Token
	c.mu.Unlock()

	c.log.Debug("authenticated with TVDB")
	return nil
}
