package bridge

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadStackFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stack.yaml")
	content := `language: go
framework: gin
database: postgres
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write stack file: %v", err)
	}

	stack, err := LoadStackFile(path)
	if err != nil {
		t.Fatalf("LoadStackFile returned error: %v", err)
	}
	if stack.Language != "go" || stack.Framework != "gin" || stack.Database != "postgres" {
		t.Fatalf("unexpected stack: %+v", stack)
	}
	if stack.Archetype != "" {
		t.Fatalf("expected unset archetype, got %q", stack.Archetype)
	}
}

func TestLoadStackFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stack.yaml")
	if err := os.WriteFile(path, []byte("lang: go\n"), 0644); err != nil {
		t.Fatalf("write stack file: %v", err)
	}
	if _, err := LoadStackFile(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestLoadStackFileEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stack.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("write stack file: %v", err)
	}
	stack, err := LoadStackFile(path)
	if err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if *stack != (StackConstraints{}) {
		t.Fatalf("expected zero constraints, got %+v", stack)
	}
}

func TestLoadStackFileMissing(t *testing.T) {
	if _, err := LoadStackFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
