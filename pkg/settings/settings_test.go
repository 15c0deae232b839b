package settings

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestGetUnsetKeyReturnsEmpty(t *testing.T) {
	store := NewStore(t.TempDir())
	value, err := store.Get("theme")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if value != "" {
		t.Fatalf("expected empty value, got %q", value)
	}
}

func TestSetPersistsImmediately(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	if err := store.Set("theme", "dark"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	// A fresh store sees the value: persistence is synchronous.
	reopened := NewStore(root)
	value, err := reopened.Get("theme")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if value != "dark" {
		t.Fatalf("expected dark, got %q", value)
	}
}

func TestSetRejectsEmptyKey(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Set("", "x"); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestDeleteRemovesKey(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Set("theme", "dark"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := store.Delete("theme"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := store.Delete("theme"); err != nil {
		t.Fatalf("deleting an absent key must be a no-op: %v", err)
	}
	value, _ := store.Get("theme")
	if value != "" {
		t.Fatalf("expected key removed, got %q", value)
	}
}

func TestAllReturnsSortedKeys(t *testing.T) {
	store := NewStore(t.TempDir())
	for key, value := range map[string]string{"zoom": "1.5", "theme": "dark", "autosave": "on"} {
		if err := store.Set(key, value); err != nil {
			t.Fatalf("Set %s: %v", key, err)
		}
	}

	values, keys, err := store.All()
	if err != nil {
		t.Fatalf("All returned error: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"autosave", "theme", "zoom"}) {
		t.Fatalf("expected sorted keys, got %v", keys)
	}
	if values["theme"] != "dark" {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestCorruptFileStartsFresh(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "settings.json"), []byte("{bad"), 0644); err != nil {
		t.Fatalf("write corrupt settings: %v", err)
	}

	store := NewStore(root)
	value, err := store.Get("theme")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if value != "" {
		t.Fatalf("expected empty value from fresh store, got %q", value)
	}
	if err := store.Set("theme", "light"); err != nil {
		t.Fatalf("Set after corruption must heal the file: %v", err)
	}
	value, _ = NewStore(root).Get("theme")
	if value != "light" {
		t.Fatalf("expected healed file to persist, got %q", value)
	}
}
