// Package browser lists and classifies directory contents for the clip
// library.
//
// Each listing is built fresh: entries are classified as directories, plain
// files, or video clips by suffix, video clips get artist/title inferred
// from their names, and stored tags overlay the inferred values. Listings
// are snapshots; later tag edits show up on the next List call.
//
// Unreadable directories produce an empty listing by design so a stale or
// revoked path never crashes the caller.
package browser
