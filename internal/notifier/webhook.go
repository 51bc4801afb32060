package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/PureGit90/COT-Monitor/internal/model"
)

// WebhookNotifier delivers run reports to a single configured endpoint
// (an n8n webhook in the original deployment).
type WebhookNotifier struct {
	URL        string
	Client     *http.Client
	MaxRetries int
}

// NewWebhookNotifier creates a notifier with optional proxy support.
func NewWebhookNotifier(webhookURL, proxyURL string) *WebhookNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &WebhookNotifier{
		URL: webhookURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		MaxRetries: 3,
	}
}

// payload is the wire shape: the structured report plus a rendered
// human-readable summary for downstream templating.
type payload struct {
	*model.RunReport
	Summary string `json:"summary"`
}

func (w *WebhookNotifier) send(report *model.RunReport, summary string) error {
	body, err := json.Marshal(payload{RunReport: report, Summary: summary})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	resp, err := w.Client.Post(w.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post report: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// Deliver posts the report with exponential backoff retry.
func (w *WebhookNotifier) Deliver(ctx context.Context, report *model.RunReport, summary string) error {
	var lastErr error
	for i := 0; i <= w.MaxRetries; i++ {
		if err := w.send(report, summary); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] webhook delivery failed (attempt %d/%d): %v, retrying in %v", i+1, w.MaxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", w.MaxRetries+1, lastErr)
}
