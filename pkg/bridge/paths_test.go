package bridge

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveOutputPathAbsoluteUnchanged(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "projects", "demo")
	got, err := ResolveOutputPath(abs, func() (string, error) { return "/home/dev", nil })
	if err != nil {
		t.Fatalf("ResolveOutputPath returned error: %v", err)
	}
	if got != abs {
		t.Fatalf("expected absolute path unchanged, got %q", got)
	}
}

func TestResolveOutputPathRelativeJoinsHome(t *testing.T) {
	got, err := ResolveOutputPath("projects/demo", func() (string, error) { return "/home/dev", nil })
	if err != nil {
		t.Fatalf("ResolveOutputPath returned error: %v", err)
	}
	want := filepath.Join("/home/dev", "projects", "demo")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestResolveOutputPathStripsDotSlash(t *testing.T) {
	got, err := ResolveOutputPath("./demo", func() (string, error) { return "/home/dev", nil })
	if err != nil {
		t.Fatalf("ResolveOutputPath returned error: %v", err)
	}
	want := filepath.Join("/home/dev", "demo")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestResolveOutputPathFallsBackToCwd(t *testing.T) {
	got, err := ResolveOutputPath("demo", func() (string, error) { return "", errors.New("no home") })
	if err != nil {
		t.Fatalf("ResolveOutputPath returned error: %v", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	want := filepath.Join(cwd, "demo")
	if got != want {
		t.Fatalf("expected cwd fallback %q, got %q", want, got)
	}
}
