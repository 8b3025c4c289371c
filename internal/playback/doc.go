// Package playback holds the playback session state machine.
//
// A Session moves between Stopped, Paused, and Playing under a single
// mutex. Play marks the session active, snapshots the shared now-playing
// slot, subscribes to output device disconnect signals, and raises a
// foreground notification. Pause keeps the notification but drops the
// foreground claim; Stop tears everything down. Duplicate transitions are
// absorbed so repeated player signals never double side effects.
//
// A Controller translates external player readiness events into those
// transitions and releases the player on terminal signals.
package playback
