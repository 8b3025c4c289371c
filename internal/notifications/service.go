package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sunflower/internal/config"
	"sunflower/internal/nametag"
	"sunflower/internal/playback"
)

const userAgent = "Sunflower-Go/0.1.0"

// NewService builds the playback notifier backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) playback.Notifier {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

// Show publishes the current track and state. The published message carries
// the same display name the browser renders so the two surfaces agree.
func (n *ntfyService) Show(ctx context.Context, state playback.State, track playback.Track) error {
	display := nametag.DisplayName(track.Artist, track.Title, track.Album)

	var data payload
	switch state {
	case playback.StatePlaying:
		data = payload{
			title:   "Sunflower - Playing",
			message: fmt.Sprintf("▶️ Now playing: %s", display),
			tags:    []string{"sunflower", "playback", "playing"},
		}
	case playback.StatePaused:
		data = payload{
			title:   "Sunflower - Paused",
			message: fmt.Sprintf("⏸️ Paused: %s", display),
			tags:    []string{"sunflower", "playback", "paused"},
		}
	default:
		return nil
	}
	return n.send(ctx, data)
}

// Hide announces the end of the session. ntfy has no notion of retracting a
// message, so a low-priority stop event stands in for removal.
func (n *ntfyService) Hide(ctx context.Context) error {
	data := payload{
		title:    "Sunflower - Stopped",
		message:  "Playback stopped",
		tags:     []string{"sunflower", "playback", "stopped"},
		priority: "low",
	}
	return n.send(ctx, data)
}

// RequestForeground is a no-op for ntfy; there is no foreground claim to
// hold on a remote notification channel.
func (n *ntfyService) RequestForeground(context.Context) error { return nil }

// ReleaseForeground is a no-op for ntfy.
func (n *ntfyService) ReleaseForeground(context.Context) error { return nil }

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
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

type noopService struct{}

func (noopService) Show(context.Context, playback.State, playback.Track) error { return nil }
func (noopService) Hide(context.Context) error                                 { return nil }
func (noopService) RequestForeground(context.Context) error                    { return nil }
func (noopService) ReleaseForeground(context.Context) error                    { return nil }
