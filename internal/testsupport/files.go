package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file with placeholder contents inside dir.
func WriteFile(t testing.TB, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
	return path
}

// MkDir creates a subdirectory inside dir.
func MkDir(t testing.TB, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	return path
}
