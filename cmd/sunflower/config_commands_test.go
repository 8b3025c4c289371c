package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected error when file exists without --overwrite")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "", ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShowRendersSettings(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "library_dir")
	requireContains(t, out, env.cfg.Paths.LibraryDir)
	requireContains(t, out, "tags.db")
}

func TestDefaultDirShowAndSet(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "default-dir"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config default-dir: %v", err)
	}
	requireContains(t, out, env.cfg.Paths.LibraryDir)

	next := t.TempDir()
	out, _, err = runCLI(t, []string{"config", "default-dir", next}, env.configPath, "")
	if err != nil {
		t.Fatalf("config default-dir set: %v", err)
	}
	requireContains(t, out, "Default directory set to")

	out, _, err = runCLI(t, []string{"config", "default-dir"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config default-dir after set: %v", err)
	}
	requireContains(t, out, next)
}

func TestDefaultDirRejectsMissingDirectory(t *testing.T) {
	env := setupCLITestEnv(t)

	missing := filepath.Join(t.TempDir(), "missing")
	if _, _, err := runCLI(t, []string{"config", "default-dir", missing}, env.configPath, ""); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
