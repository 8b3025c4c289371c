package mpv_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"sunflower/internal/services/mpv"
	"sunflower/internal/testsupport"
)

type fakeHandle struct {
	mu         sync.Mutex
	suspended  bool
	resumed    int
	terminated bool
	done       chan error
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{done: make(chan error, 1)}
}

func (h *fakeHandle) Suspend() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.suspended = true
	return nil
}

func (h *fakeHandle) Resume() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.suspended = false
	h.resumed++
	return nil
}

func (h *fakeHandle) Terminate() error {
	h.mu.Lock()
	h.terminated = true
	h.mu.Unlock()
	h.done <- nil
	return nil
}

func (h *fakeHandle) Wait() error {
	return <-h.done
}

func (h *fakeHandle) exit(err error) {
	h.done <- err
}

type fakeExecutor struct {
	mu      sync.Mutex
	handles []*fakeHandle
	started [][]string
}

func (f *fakeExecutor) Start(_ context.Context, binary string, args []string) (mpv.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	handle := newFakeHandle()
	f.handles = append(f.handles, handle)
	f.started = append(f.started, append([]string{binary}, args...))
	return handle, nil
}

func (f *fakeExecutor) last() *fakeHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.handles) == 0 {
		return nil
	}
	return f.handles[len(f.handles)-1]
}

type eventRecorder struct {
	mu      sync.Mutex
	ready   []bool
	ended   int
	errored int
}

func (r *eventRecorder) events() mpv.Events {
	return mpv.Events{
		Ready: func(playing bool) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.ready = append(r.ready, playing)
		},
		Ended: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.ended++
		},
		Errored: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.errored++
		},
	}
}

func (r *eventRecorder) waitFor(t *testing.T, check func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		r.mu.Lock()
		ok := check()
		r.mu.Unlock()
		if ok {
			return
		}
		select {
		case <-deadline:
			t.Fatal("condition never met")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func newClient(t *testing.T, executor *fakeExecutor, recorder *eventRecorder) (*mpv.Client, string) {
	t.Helper()
	media := testsupport.WriteFile(t, t.TempDir(), "Artist - Song.mp4")
	client, err := mpv.New("mpv", []string{"--no-terminal"}, recorder.events(), nil, mpv.WithExecutor(executor))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, media
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := mpv.New("  ", nil, mpv.Events{}, nil); err == nil {
		t.Fatal("expected error for blank binary")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	client, _ := newClient(t, &fakeExecutor{}, &eventRecorder{})
	err := client.Load(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	if err == nil {
		t.Fatal("expected error for missing media file")
	}
}

func TestPlayStartsProcessWithArgs(t *testing.T) {
	executor := &fakeExecutor{}
	recorder := &eventRecorder{}
	client, media := newClient(t, executor, recorder)
	ctx := context.Background()

	if err := client.Load(ctx, media); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := client.Play(ctx); err != nil {
		t.Fatalf("Play: %v", err)
	}

	executor.mu.Lock()
	started := executor.started
	executor.mu.Unlock()
	if len(started) != 1 {
		t.Fatalf("expected one process start, got %d", len(started))
	}
	want := []string{"mpv", "--no-terminal", media}
	for i, arg := range want {
		if started[0][i] != arg {
			t.Fatalf("expected command %v, got %v", want, started[0])
		}
	}
	recorder.waitFor(t, func() bool { return len(recorder.ready) == 1 && recorder.ready[0] })
}

func TestPauseAndResumeSignalProcess(t *testing.T) {
	executor := &fakeExecutor{}
	recorder := &eventRecorder{}
	client, media := newClient(t, executor, recorder)
	ctx := context.Background()

	if err := client.Load(ctx, media); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := client.Play(ctx); err != nil {
		t.Fatalf("Play: %v", err)
	}
	handle := executor.last()

	if err := client.Pause(ctx); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	handle.mu.Lock()
	suspended := handle.suspended
	handle.mu.Unlock()
	if !suspended {
		t.Fatal("expected process suspended after Pause")
	}
	recorder.waitFor(t, func() bool {
		return len(recorder.ready) == 2 && !recorder.ready[1]
	})

	if err := client.Play(ctx); err != nil {
		t.Fatalf("Play after Pause: %v", err)
	}
	handle.mu.Lock()
	resumed := handle.resumed
	handle.mu.Unlock()
	if resumed != 1 {
		t.Fatalf("expected one resume, got %d", resumed)
	}

	executor.mu.Lock()
	starts := len(executor.started)
	executor.mu.Unlock()
	if starts != 1 {
		t.Fatalf("resume must not start a second process, got %d starts", starts)
	}
}

func TestStopTerminatesWithoutErrorEvent(t *testing.T) {
	executor := &fakeExecutor{}
	recorder := &eventRecorder{}
	client, media := newClient(t, executor, recorder)
	ctx := context.Background()

	if err := client.Load(ctx, media); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := client.Play(ctx); err != nil {
		t.Fatalf("Play: %v", err)
	}
	handle := executor.last()

	if err := client.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	handle.mu.Lock()
	terminated := handle.terminated
	handle.mu.Unlock()
	if !terminated {
		t.Fatal("expected process terminated")
	}

	time.Sleep(20 * time.Millisecond)
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if recorder.ended != 0 || recorder.errored != 0 {
		t.Fatalf("requested stop must not fire end events, got ended=%d errored=%d",
			recorder.ended, recorder.errored)
	}
}

func TestNaturalExitFiresEnded(t *testing.T) {
	executor := &fakeExecutor{}
	recorder := &eventRecorder{}
	client, media := newClient(t, executor, recorder)
	ctx := context.Background()

	if err := client.Load(ctx, media); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := client.Play(ctx); err != nil {
		t.Fatalf("Play: %v", err)
	}

	executor.last().exit(nil)
	recorder.waitFor(t, func() bool { return recorder.ended == 1 })
}

func TestCrashFiresErrored(t *testing.T) {
	executor := &fakeExecutor{}
	recorder := &eventRecorder{}
	client, media := newClient(t, executor, recorder)
	ctx := context.Background()

	if err := client.Load(ctx, media); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := client.Play(ctx); err != nil {
		t.Fatalf("Play: %v", err)
	}

	executor.last().exit(errors.New("segfault"))
	recorder.waitFor(t, func() bool { return recorder.errored == 1 })
}

func TestReleaseAllowsReload(t *testing.T) {
	executor := &fakeExecutor{}
	recorder := &eventRecorder{}
	client, media := newClient(t, executor, recorder)
	ctx := context.Background()

	if err := client.Load(ctx, media); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := client.Play(ctx); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := client.Load(ctx, media); err == nil {
		t.Fatal("expected reload while running to fail")
	}

	if err := client.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := client.Load(ctx, media); err != nil {
		t.Fatalf("Load after Release: %v", err)
	}
}
