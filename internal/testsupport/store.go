package testsupport

import (
	"context"
	"testing"

	"sunflower/internal/config"
	"sunflower/internal/tags"
)

// MustOpenStore opens a tags.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *tags.Store {
	t.Helper()

	store, err := tags.Open(cfg)
	if err != nil {
		t.Fatalf("tags.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// InsertTag stores a tag for tests using the provided store.
func InsertTag(t testing.TB, store *tags.Store, fileName, artist, title, album string) *tags.Tag {
	t.Helper()

	tag := &tags.Tag{FileName: fileName, Artist: artist, Title: title, Album: album}
	if err := store.Insert(context.Background(), tag); err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
	return tag
}
