// Package logging builds slog loggers for the CLI.
//
// Output format and level come from configuration; console output renders
// compact single-line records while the json format emits machine-readable
// logs. When a log directory is configured, records are mirrored into
// sunflower.log alongside stderr.
package logging
