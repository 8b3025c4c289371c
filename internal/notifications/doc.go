// Package notifications publishes playback state over ntfy.
//
// The service implements the playback Notifier contract. Without a
// configured topic a noop notifier is returned so callers never branch on
// whether notifications are enabled.
package notifications
