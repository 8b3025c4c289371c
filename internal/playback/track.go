package playback

import (
	"sync/atomic"
	"time"
)

// Track describes the media currently handed to the external player.
type Track struct {
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

// NowPlaying is an atomically replaceable single slot holding the current
// track. Only the most recent track matters: whoever starts a play operation
// writes it, and the session reads it once per play transition. There is no
// history and no queue.
type NowPlaying struct {
	track atomic.Pointer[Track]
}

// Set replaces the current track.
func (n *NowPlaying) Set(track Track) {
	n.track.Store(&track)
}

// Current returns the most recently set track, or the zero Track when
// nothing has been set yet.
func (n *NowPlaying) Current() Track {
	if t := n.track.Load(); t != nil {
		return *t
	}
	return Track{}
}
