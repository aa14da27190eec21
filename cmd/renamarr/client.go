package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/vmunix/renamarr/internal/importer"
	"github.com/vmunix/renamarr/internal/jobs"
	"github.com/vmunix/renamarr/internal/presets"
)

// Client wraps HTTP calls to the renamarr daemon.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new renamarr API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx response from the daemon.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("server error %d: %s (%s)", e.Status, e.Message, e.Code)
	}
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

func readError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return &APIError{Status: resp.StatusCode, Code: payload.Code, Message: payload.Error}
	}
	return &APIError{Status: resp.StatusCode, Message: string(bytes.TrimSpace(body))}
}

func (c *Client) do(method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readError(resp)
	}
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.do(http.MethodPost, path, body, result)
}

func (c *Client) delete(path string) error {
	return c.do(http.MethodDelete, path, nil, nil)
}

// HealthResponse is the daemon's health report.
type HealthResponse struct {
	Status             string         `json:"status"`
	Version            string         `json:"version"`
	TMDBKeySet         bool           `json:"tmdb_key_set"`
	TVDBKeySet         bool           `json:"tvdb_key_set"`
	MediaInfoAvailable bool           `json:"mediainfo_available"`
	PlexConnected      *bool          `json:"plex_connected,omitempty"`
	Jobs               map[string]int `json:"jobs"`
}

func (c *Client) Health() (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get("/api/v1/health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitRequest is the body of POST /api/v1/jobs.
type SubmitRequest struct {
	Files           []string `json:"files"`
	DataSource      string   `json:"data_source,omitempty"`
	NamingScheme    string   `json:"naming_scheme,omitempty"`
	OutputDir       string   `json:"output_dir,omitempty"`
	Operation       string   `json:"operation,omitempty"`
	DryRun          bool     `json:"dry_run"`
	DownloadArtwork bool     `json:"download_artwork"`
	WriteMetadata   bool     `json:"write_metadata"`
	Language        string   `json:"language,omitempty"`
	Overwrite       bool     `json:"overwrite"`
	WebhookURL      string   `json:"webhook_url,omitempty"`
}

func (c *Client) SubmitJob(req SubmitRequest) (*jobs.Summary, error) {
	var resp jobs.Summary
	if err := c.post("/api/v1/jobs", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Jobs() ([]jobs.Summary, error) {
	var resp []jobs.Summary
	if err := c.get("/api/v1/jobs", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Job(id string) (*jobs.Detail, error) {
	var resp jobs.Detail
	if err := c.get("/api/v1/jobs/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelResponse reports a cancellation.
type CancelResponse struct {
	JobID     string `json:"job_id"`
	Cancelled bool   `json:"cancelled"`
}

func (c *Client) CancelJob(id string) (*CancelResponse, error) {
	var resp CancelResponse
	if err := c.post("/api/v1/jobs/"+url.PathEscape(id)+"/cancel", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteJob(id string) error {
	return c.delete("/api/v1/jobs/" + url.PathEscape(id))
}

func (c *Client) Presets() ([]presets.Preset, error) {
	var resp struct {
		Presets []presets.Preset `json:"presets"`
	}
	if err := c.get("/api/v1/presets", &resp); err != nil {
		return nil, err
	}
	return resp.Presets, nil
}

func (c *Client) SavePreset(name, scheme string) (*presets.Preset, error) {
	body := map[string]string{"name": name, "scheme": scheme}
	var resp presets.Preset
	if err := c.post("/api/v1/presets", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeletePreset(name string) error {
	return c.delete("/api/v1/presets/" + url.PathEscape(name))
}

func (c *Client) RenamePreset(oldName, newName string) error {
	body := map[string]string{"name": newName}
	return c.post("/api/v1/presets/"+url.PathEscape(oldName)+"/rename", body, nil)
}

// HistoryResponse lists recent renames.
type HistoryResponse struct {
	Entries []*importer.HistoryEntry `json:"entries"`
	Total   int                      `json:"total"`
	CanUndo bool                     `json:"can_undo"`
	CanRedo bool                     `json:"can_redo"`
}

func (c *Client) History(limit int) (*HistoryResponse, error) {
	path := "/api/v1/history"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp HistoryResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Undo() (*importer.HistoryEntry, error) {
	var resp importer.HistoryEntry
	if err := c.post("/api/v1/history/undo", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Redo() (*importer.HistoryEntry, error) {
	var resp importer.HistoryEntry
	if err := c.post("/api/v1/history/redo", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
