// Package nametag infers artist and title metadata from video file names.
//
// Inference is a pure function over the file name: it never touches the
// filesystem and always produces a result. Stored tags take precedence over
// inferred values; the browser overlays them after inference.
package nametag
