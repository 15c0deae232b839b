package bridge

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestEnumerateFilesRelativeSlashPaths(t *testing.T) {
	root := t.TempDir()
	mustWrite := func(rel, content string) {
		t.Helper()
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	mustWrite("README.md", "# demo")
	mustWrite("src/main.go", "package main")
	mustWrite("src/internal/util.go", "package internal")

	files := EnumerateFiles(root)
	sort.Strings(files)
	want := []string{"README.md", "src/internal/util.go", "src/main.go"}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, files)
		}
	}
}

func TestEnumerateFilesMissingRoot(t *testing.T) {
	files := EnumerateFiles(filepath.Join(t.TempDir(), "does-not-exist"))
	if len(files) != 0 {
		t.Fatalf("expected empty list for missing root, got %v", files)
	}
}
