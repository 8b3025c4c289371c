package mpv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

// Events receives player lifecycle signals. Ready fires once the process is
// running with its playback intent, Ended when the media finished normally,
// Errored when the process died unexpectedly.
type Events struct {
	Ready   func(intendingToPlay bool)
	Ended   func()
	Errored func()
}

// Executor abstracts process control for testability.
type Executor interface {
	Start(ctx context.Context, binary string, args []string) (Handle, error)
}

// Handle controls a started player process.
type Handle interface {
	Suspend() error
	Resume() error
	Terminate() error
	Wait() error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client drives an external mpv process. Pause and resume are implemented
// with job control signals so no IPC channel to the player is needed; Stop
// terminates the process outright.
type Client struct {
	binary string
	args   []string
	exec   Executor
	events Events
	logger *slog.Logger

	mu        sync.Mutex
	path      string
	handle    Handle
	suspended bool
}

// New constructs an mpv client. Extra args are passed through ahead of the
// file path on every launch.
func New(binary string, args []string, events Events, logger *slog.Logger, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("player binary required")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	client := &Client{
		binary: binary,
		args:   append([]string(nil), args...),
		exec:   processExecutor{},
		events: events,
		logger: logger,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Load records the file to play. The process launches on the next Play call
// so a load never flashes a player window for media that is never started.
func (c *Client) Load(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("media path required")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("stat media: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle != nil {
		return errors.New("player already loaded; release it first")
	}
	c.path = path
	return nil
}

// Play starts the process for the loaded path, or resumes a suspended one.
func (c *Client) Play(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle != nil {
		if !c.suspended {
			return nil
		}
		if err := c.handle.Resume(); err != nil {
			return fmt.Errorf("resume player: %w", err)
		}
		c.suspended = false
		c.notifyReady(true)
		return nil
	}

	if c.path == "" {
		return errors.New("no media loaded")
	}

	args := append(append([]string(nil), c.args...), c.path)
	handle, err := c.exec.Start(ctx, c.binary, args)
	if err != nil {
		return fmt.Errorf("start player: %w", err)
	}
	c.handle = handle
	c.suspended = false

	go c.await(handle)
	c.notifyReady(true)
	return nil
}

// Pause suspends the running process. A player that is not running absorbs
// the call.
func (c *Client) Pause(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle == nil || c.suspended {
		return nil
	}
	if err := c.handle.Suspend(); err != nil {
		return fmt.Errorf("suspend player: %w", err)
	}
	c.suspended = true
	c.notifyReady(false)
	return nil
}

// Stop terminates the process. The exit is expected, so no error event
// fires for it.
func (c *Client) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopLocked()
}

// Release stops any running process and clears the loaded path so the
// client can be reused.
func (c *Client) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.stopLocked()
	c.path = ""
	return err
}

func (c *Client) stopLocked() error {
	if c.handle == nil {
		return nil
	}
	if c.suspended {
		// A stopped process cannot handle the termination signal.
		if err := c.handle.Resume(); err != nil {
			c.logger.Warn("resume before terminate failed", slog.Any("error", err))
		}
	}
	handle := c.handle
	c.handle = nil
	c.suspended = false
	if err := handle.Terminate(); err != nil {
		return fmt.Errorf("terminate player: %w", err)
	}
	return nil
}

// await reaps the process. A handle detached by a requested stop is waited
// on without firing end events.
func (c *Client) await(handle Handle) {
	err := handle.Wait()

	c.mu.Lock()
	if c.handle != handle {
		c.mu.Unlock()
		return
	}
	c.handle = nil
	c.suspended = false
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("player exited with error", slog.Any("error", err))
		if c.events.Errored != nil {
			c.events.Errored()
		}
		return
	}
	if c.events.Ended != nil {
		c.events.Ended()
	}
}

func (c *Client) notifyReady(intendingToPlay bool) {
	if c.events.Ready != nil {
		go c.events.Ready(intendingToPlay)
	}
}

type processExecutor struct{}

func (processExecutor) Start(ctx context.Context, binary string, args []string) (Handle, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &processHandle{cmd: cmd}, nil
}

type processHandle struct {
	cmd *exec.Cmd
}

func (h *processHandle) Suspend() error {
	return h.cmd.Process.Signal(unix.SIGSTOP)
}

func (h *processHandle) Resume() error {
	return h.cmd.Process.Signal(unix.SIGCONT)
}

func (h *processHandle) Terminate() error {
	return h.cmd.Process.Signal(unix.SIGTERM)
}

func (h *processHandle) Wait() error {
	err := h.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// SIGTERM exits are requested shutdowns, not failures.
		if status, ok := exitErr.Sys().(unix.WaitStatus); ok && status.Signaled() && status.Signal() == unix.SIGTERM {
			return nil
		}
	}
	return err
}
