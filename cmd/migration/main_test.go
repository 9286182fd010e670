package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseSteps(t *testing.T) {
	t.Parallel()

	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("expected default of 1 step, got %d err=%v", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("expected 3 steps, got %d err=%v", got, err)
	}
	for _, raw := range []string{"0", "-2", "x"} {
		if _, err := parseSteps([]string{raw}); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	t.Parallel()

	if got, err := parseVersion("4"); err != nil || got != 4 {
		t.Fatalf("unexpected version %d err=%v", got, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if got, err := parseTarget("2"); err != nil || got != 2 {
		t.Fatalf("unexpected target %d err=%v", got, err)
	}
	if _, err := parseTarget("two"); err == nil {
		t.Fatalf("expected error for non numeric target")
	}
}

func TestResolveMigrationsDirPrefersFlag(t *testing.T) {
	dir := t.TempDir()
	got, err := resolveMigrationsDir(dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want, _ := filepath.Abs(dir)
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	missing := filepath.Join(dir, "missing")
	t.Setenv("MIGRATIONS_DIR", "")
	wd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(wd, "db", "migrations")); err == nil {
		t.Skip("working directory has db/migrations")
	}
	if _, err := resolveMigrationsDir(missing); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
