package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Notifier is the notification sink: it accepts a title and a body and
// dispatches them on some channel.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// WebhookNotifier posts notifications as JSON to a configured URL, the
// externally authorized channel.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, title, body string) error {
	payload, err := json.Marshal(map[string]string{
		"title": title,
		"body":  body,
	})
	if err != nil {
		return fmt.Errorf("could not serialize notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("could not deliver notification: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// AlertNotifier is the in-process fallback channel: the notification is
// written to the application log. It never fails.
type AlertNotifier struct{}

func NewAlertNotifier() *AlertNotifier {
	return &AlertNotifier{}
}

func (n *AlertNotifier) Notify(ctx context.Context, title, body string) error {
	log.Warnf("REMINDER: %s: %s", title, body)
	return nil
}

// FallbackNotifier tries the primary channel and degrades to the
// fallback when the primary is absent or fails. Scheduling logic is
// unaffected by the degradation.
type FallbackNotifier struct {
	primary  Notifier
	fallback Notifier
}

func NewFallbackNotifier(primary, fallback Notifier) *FallbackNotifier {
	return &FallbackNotifier{primary: primary, fallback: fallback}
}

func (n *FallbackNotifier) Notify(ctx context.Context, title, body string) error {
	if n.primary != nil {
		if err := n.primary.Notify(ctx, title, body); err == nil {
			return nil
		} else {
			log.Warnf("primary notification channel failed, falling back to alert: %v", err)
		}
	}
	return n.fallback.Notify(ctx, title, body)
}
