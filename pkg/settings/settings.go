// Package settings persists small user preferences as a flat key/value
// JSON document. All values are strings; typed interpretation is the
// caller's concern.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/seedforge/seedforge/pkg/logger"
)

type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a store backed by <root>/settings.json.
func NewStore(root string) *Store {
	return &Store{path: filepath.Join(root, "settings.json")}
}

func (s *Store) Path() string {
	return s.path
}

// Get returns the stored value for key, or "" when unset.
func (s *Store) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.load()
	return values[key], nil
}

// Set writes key=value and persists immediately.
func (s *Store) Set(key, value string) error {
	if key == "" {
		return fmt.Errorf("settings key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.load()
	values[key] = value
	return s.save(values)
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.load()
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

// All returns every stored key in sorted order with its value.
func (s *Store) All() (map[string]string, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.load()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return values, keys, nil
}

// load never fails: a missing or corrupt file yields an empty map and
// the next Set rewrites it wholesale.
func (s *Store) load() map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]string{}
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		logger.WarnCF("settings", "Settings file corrupt, starting fresh", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return map[string]string{}
	}
	if values == nil {
		values = map[string]string{}
	}
	return values
}

func (s *Store) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}
