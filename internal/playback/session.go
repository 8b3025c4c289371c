package playback

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// State is the playback session state.
type State int

const (
	StateStopped State = iota
	StatePaused
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Notifier surfaces the session's persistent notification. Show renders or
// updates it for the given state, Hide removes it, and the foreground pair
// pins and unpins the session's foreground claim while playback is active.
type Notifier interface {
	Show(ctx context.Context, state State, track Track) error
	Hide(ctx context.Context) error
	RequestForeground(ctx context.Context) error
	ReleaseForeground(ctx context.Context) error
}

// DisconnectSource delivers external output device disconnect signals. The
// session subscribes while playback runs and unsubscribes on stop. Subscribe
// returns the function that cancels the subscription.
type DisconnectSource interface {
	Subscribe(handler func()) (unsubscribe func())
}

// Session is the playback state machine. All transitions run under one
// mutex so concurrent signals from the player, the notification actions,
// and the device disconnect source serialize cleanly. Transitions never
// fail outright: notifier errors are logged and the state change proceeds.
type Session struct {
	mu          sync.Mutex
	id          string
	state       State
	active      bool
	current     Track
	unsubscribe func()

	now        *NowPlaying
	notifier   Notifier
	disconnect DisconnectSource
	logger     *slog.Logger
}

// NewSession builds a stopped session around the shared now-playing slot.
// The disconnect source may be nil when no output device signal exists.
func NewSession(now *NowPlaying, notifier Notifier, disconnect DisconnectSource, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		id:         uuid.NewString(),
		now:        now,
		notifier:   notifier,
		disconnect: disconnect,
		logger:     logger,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Active reports whether the session holds resources, that is, whether a
// stop is still pending.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Current returns the track snapshot taken by the last play transition.
func (s *Session) Current() Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Play moves the session to Playing. From Stopped or Paused it marks the
// session active, snapshots the now-playing track, subscribes to disconnect
// signals, and raises the foreground notification. When already Playing it
// only refreshes the snapshot; the notification is re-rendered solely when
// the track actually changed, so repeated identical signals stay silent.
func (s *Session) Play(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.now.Current()
	if s.state == StatePlaying {
		if snapshot != s.current {
			s.current = snapshot
			s.show(ctx, StatePlaying)
		}
		return
	}

	s.active = true
	s.current = snapshot
	s.subscribeLocked()
	s.state = StatePlaying

	if err := s.notifier.RequestForeground(ctx); err != nil {
		s.logger.Warn("foreground request failed", slog.Any("error", err))
	}
	s.show(ctx, StatePlaying)
	s.logger.Info("playback started",
		slog.String("id", s.id),
		slog.String("title", s.current.Title),
		slog.String("artist", s.current.Artist))
}

// Pause moves the session from Playing to Paused. The notification stays
// visible with a play action while the foreground claim is released so the
// session can be reclaimed. Any other state absorbs the call.
func (s *Session) Pause(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return
	}
	s.state = StatePaused
	s.show(ctx, StatePaused)
	if err := s.notifier.ReleaseForeground(ctx); err != nil {
		s.logger.Warn("foreground release failed", slog.Any("error", err))
	}
	s.logger.Info("playback paused", slog.String("id", s.id))
}

// Stop deactivates the session from any state: the disconnect subscription
// is cancelled, the notification removed, and the foreground claim dropped.
// Stopping an inactive session is a no-op.
func (s *Session) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active && s.state == StateStopped {
		return
	}
	s.active = false
	s.state = StateStopped
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if err := s.notifier.Hide(ctx); err != nil {
		s.logger.Warn("notification hide failed", slog.Any("error", err))
	}
	if err := s.notifier.ReleaseForeground(ctx); err != nil {
		s.logger.Warn("foreground release failed", slog.Any("error", err))
	}
	s.logger.Info("playback stopped", slog.String("id", s.id))
}

// HandleDeviceDisconnected pauses active playback when an external output
// device goes away. A paused or stopped session ignores the signal.
func (s *Session) HandleDeviceDisconnected(ctx context.Context) {
	if s.State() != StatePlaying {
		return
	}
	s.Pause(ctx)
}

// StopOnDone forces a stop when the given context is torn down, covering
// shutdown paths that never reach an explicit Stop call.
func (s *Session) StopOnDone(ctx context.Context) {
	go func() {
		<-ctx.Done()
		s.Stop(context.WithoutCancel(ctx))
	}()
}

func (s *Session) subscribeLocked() {
	if s.disconnect == nil || s.unsubscribe != nil {
		return
	}
	s.unsubscribe = s.disconnect.Subscribe(func() {
		s.HandleDeviceDisconnected(context.Background())
	})
}

func (s *Session) show(ctx context.Context, state State) {
	if err := s.notifier.Show(ctx, state, s.current); err != nil {
		s.logger.Warn("notification update failed",
			slog.String("state", state.String()), slog.Any("error", err))
	}
}
