// Package services defines the shared error taxonomy for sunflower
// components and hosts wrappers around external collaborator binaries.
//
// Sentinel errors classify failures for callers: ErrInvalidArgument for
// missing or empty required arguments (checked before any I/O), ErrNotFound
// and ErrConflict for key lookups and duplicate inserts, ErrParse for
// malformed backup payloads, and ErrIO for storage or filesystem failures.
// Use Wrap to attach component and operation context while keeping the
// sentinel reachable through errors.Is.
package services
