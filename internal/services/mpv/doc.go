// Package mpv runs the external media player.
//
// The client launches one mpv process per played file and drives it with
// job control signals: suspend for pause, continue for resume, terminate
// for stop. Lifecycle events flow back through the Events callbacks so the
// playback session can mirror what the process actually does.
package mpv
