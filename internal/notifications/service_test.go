package notifications_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"sunflower/internal/config"
	"sunflower/internal/notifications"
	"sunflower/internal/playback"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	err := svc.Show(context.Background(), playback.StatePlaying, playback.Track{Title: "Song"})
	if err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
	if err := svc.Hide(context.Background()); err != nil {
		t.Fatalf("expected noop hide to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsStates(t *testing.T) {
	track := playback.Track{Artist: "Artist", Title: "Song", Album: "Album"}
	tests := []struct {
		name           string
		publish        func(svc playback.Notifier) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "playing",
			publish: func(svc playback.Notifier) error {
				return svc.Show(context.Background(), playback.StatePlaying, track)
			},
			expectTitle:   "Sunflower - Playing",
			expectMessage: "▶️ Now playing: Artist - Song (Album)",
			expectTags:    "sunflower,playback,playing",
		},
		{
			name: "paused",
			publish: func(svc playback.Notifier) error {
				return svc.Show(context.Background(), playback.StatePaused, track)
			},
			expectTitle:   "Sunflower - Paused",
			expectMessage: "⏸️ Paused: Artist - Song (Album)",
			expectTags:    "sunflower,playback,paused",
		},
		{
			name: "stopped",
			publish: func(svc playback.Notifier) error {
				return svc.Hide(context.Background())
			},
			expectTitle:    "Sunflower - Stopped",
			expectMessage:  "Playback stopped",
			expectTags:     "sunflower,playback,stopped",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5

			svc := notifications.NewService(&cfg)
			if err := tc.publish(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceIgnoresStoppedShow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call for stopped state: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	if err := svc.Show(context.Background(), playback.StateStopped, playback.Track{}); err != nil {
		t.Fatalf("expected no error for stopped state, got %v", err)
	}
}

func TestNtfyServiceSurfacesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	err := svc.Show(context.Background(), playback.StatePlaying, playback.Track{Title: "Song"})
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
}
