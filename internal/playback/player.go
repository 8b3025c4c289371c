package playback

import "context"

// Player is the external media player the session drives. Load hands it a
// file, the transport methods mirror the session transitions, and Release
// frees whatever the player holds once the session is done with it.
type Player interface {
	Load(ctx context.Context, path string) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Stop(ctx context.Context) error
	Release() error
}

// Controller binds a Player to a Session and translates player readiness
// signals into session transitions. The player reports readiness together
// with its intent; terminal signals tear the session down and release the
// player.
type Controller struct {
	session *Session
	player  Player
}

// NewController wires the player's event stream to the session.
func NewController(session *Session, player Player) *Controller {
	return &Controller{session: session, player: player}
}

// Start loads the given path, records the track in the now-playing slot,
// and asks the player to begin. The session transition itself happens when
// the player signals readiness.
func (c *Controller) Start(ctx context.Context, path string, track Track) error {
	c.session.now.Set(track)
	if err := c.player.Load(ctx, path); err != nil {
		return err
	}
	return c.player.Play(ctx)
}

// OnReady maps a readiness signal to a transition: ready while intending to
// play becomes Play, ready while not intending to play becomes Pause.
func (c *Controller) OnReady(ctx context.Context, intendingToPlay bool) {
	if intendingToPlay {
		c.session.Play(ctx)
		return
	}
	c.session.Pause(ctx)
}

// OnEnded stops the session when the media runs out, then releases the
// player.
func (c *Controller) OnEnded(ctx context.Context) {
	c.session.Stop(ctx)
	c.releasePlayer()
}

// OnError treats an unrecoverable player error exactly like the media
// ending: stop, then release.
func (c *Controller) OnError(ctx context.Context) {
	c.session.Stop(ctx)
	c.releasePlayer()
}

func (c *Controller) releasePlayer() {
	if err := c.player.Release(); err != nil {
		c.session.logger.Warn("player release failed", "error", err)
	}
}
