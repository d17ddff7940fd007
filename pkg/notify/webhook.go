package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Lead is the payload announced for every captured form.
type Lead struct {
	Kind    string `json:"kind"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// Webhook posts lead notifications to an HTTP endpoint.
type Webhook struct {
	url    string
	token  string
	client *http.Client
}

// NewWebhook returns a notifier for url. An empty url yields a disabled notifier.
func NewWebhook(url, token string) *Webhook {
	return &Webhook{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether a destination is configured.
func (w *Webhook) Enabled() bool {
	return w != nil && w.url != ""
}

// Send posts the lead. It is a no-op when the webhook is disabled.
func (w *Webhook) Send(ctx context.Context, lead Lead) error {
	if !w.Enabled() {
		return nil
	}

	payload, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("failed to marshal lead notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.token != "" {
		req.Header.Set("Authorization", "Bearer "+w.token)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send lead notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notification webhook returned %s: %s", resp.Status, bytes.TrimSpace(body))
	}
	return nil
}
