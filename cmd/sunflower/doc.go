// Package main hosts the Sunflower CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the clip library on the terminal:
// browsing the collection, reading and editing tags, exporting and
// importing backups, launching playback, and configuration scaffolding. It
// centralizes configuration resolution, store access, and logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
