package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSteps(t *testing.T) {
	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("default steps: got=%d err=%v", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("explicit steps: got=%d err=%v", got, err)
	}
	for _, raw := range []string{"0", "-1", "x"} {
		if _, err := parseSteps([]string{raw}); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseVersion(t *testing.T) {
	if got, err := parseVersion("20210601000001"); err != nil || got != 20210601000001 {
		t.Fatalf("unexpected version: got=%d err=%v", got, err)
	}
	if _, err := parseVersion("-2"); err == nil {
		t.Fatal("expected error for negative version")
	}
}

func TestResolveSource(t *testing.T) {
	t.Run("url passes through", func(t *testing.T) {
		got, err := resolveSource("file://db/migrations")
		if err != nil || got != "file://db/migrations" {
			t.Fatalf("unexpected source: got=%q err=%v", got, err)
		}
	})

	t.Run("directory becomes file url", func(t *testing.T) {
		dir := t.TempDir()
		got, err := resolveSource(dir)
		if err != nil {
			t.Fatalf("resolve source: %v", err)
		}
		if !strings.HasPrefix(got, "file://") || !strings.HasSuffix(got, filepath.ToSlash(dir)) {
			t.Fatalf("unexpected source: %q", got)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Chdir(t.TempDir())

		if _, err := resolveSource(filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Fatal("expected error for missing directory")
		}
	})
}
