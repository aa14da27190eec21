// Package notify tells the outside world that a job finished: a JSON webhook
// for the caller and an optional Plex library refresh.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// ErrWebhookStatus is returned when the receiver answers with a non-2xx status.
var ErrWebhookStatus = errors.New("webhook returned error status")

const defaultWebhookTimeout = 10 * time.Second

// Webhook posts job summaries as JSON.
type Webhook struct {
	httpClient *http.Client
	userAgent  string
	log        *slog.Logger
}

// NewWebhook creates a webhook sender. userAgent may be empty.
func NewWebhook(userAgent string, log *slog.Logger) *Webhook {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Webhook{
		httpClient: &http.Client{Timeout: defaultWebhookTimeout},
		userAgent:  userAgent,
		log:        log.With("component", "webhook"),
	}
}

// Post sends payload to url as a JSON body.
func (w *Webhook) Post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.userAgent != "" {
		req.Header.Set("User-Agent", w.userAgent)
	}

	start := time.Now()
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", ErrWebhookStatus, resp.StatusCode)
	}

	w.log.Debug("webhook delivered", "url", url, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
	return nil
}
