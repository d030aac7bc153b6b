package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"backline/internal/config"
)

const userAgent = "backline/0.1.0"

// Event names something worth telling the band about.
type Event string

const (
	EventRiderExported    Event = "rider_exported"
	EventRiderFailed      Event = "rider_failed"
	EventSnapshotImported Event = "snapshot_imported"
	EventStagePlotSaved   Event = "stage_plot_saved"
	EventTest             Event = "test"
)

// Payload carries event fields. Values are formatted with %v.
type Payload map[string]any

// Service publishes events.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := cfg.NotifyTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint: topic,
		band:     cfg.Band.Name,
		client:   &http.Client{Timeout: timeout},
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	band     string
	client   *http.Client
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	msg, ok := n.format(event, payload)
	if !ok {
		return nil
	}
	return n.send(ctx, msg)
}

func (n *ntfyService) format(event Event, payload Payload) (message, bool) {
	switch event {
	case EventRiderExported:
		body := fmt.Sprintf("📄 Rider ready: %d channels", intValue(payload, "channels"))
		if path := stringValue(payload, "path"); path != "" {
			body += "\nFile: " + path
		}
		return message{title: n.title("Rider Ready"), body: body, tags: []string{"backline", "rider", "exported"}}, true
	case EventRiderFailed:
		body := "❌ Could not generate rider"
		if reason := stringValue(payload, "error"); reason != "" {
			body += ": " + reason
		}
		return message{title: n.title("Rider Failed"), body: body, tags: []string{"backline", "rider", "error"}, priority: "high"}, true
	case EventSnapshotImported:
		body := fmt.Sprintf("📦 Inventory imported: %d added, %d updated", intValue(payload, "added"), intValue(payload, "updated"))
		return message{title: n.title("Inventory Imported"), body: body, tags: []string{"backline", "snapshot", "imported"}}, true
	case EventTest:
		return message{title: n.title("Test"), body: "🧪 Notification system test", tags: []string{"backline", "test"}, priority: "low"}, true
	}
	return message{}, false
}

func (n *ntfyService) title(suffix string) string {
	if n.band == "" {
		return "backline - " + suffix
	}
	return n.band + " - " + suffix
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.title != "" {
		req.Header.Set("Title", msg.title)
	}
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" && msg.priority != "default" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func stringValue(p Payload, key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func intValue(p Payload, key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
