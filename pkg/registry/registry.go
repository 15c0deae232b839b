// Package registry persists the catalog of validated seeds. The
// registry is a single JSON document, read-modify-written as a whole;
// writes go through a temp file + rename so a crash never leaves a
// half-written catalog behind.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/seedforge/seedforge/pkg/logger"
)

const registryVersion = "1.0.0"

// SeedEntry is one validated seed. The stack is kept opaque: it is
// whatever the generator resolved, recorded for browsing and filtering
// rather than interpreted here.
type SeedEntry struct {
	Seed        uint64                 `json:"seed"`
	Stack       map[string]interface{} `json:"stack"`
	Files       []string               `json:"files"`
	ValidatedAt string                 `json:"validatedAt"`
	Tags        []string               `json:"tags"`
}

// Data is the persisted registry document.
type Data struct {
	Version      string      `json:"version"`
	GeneratedAt  string      `json:"generatedAt"`
	TotalEntries int         `json:"totalEntries"`
	Entries      []SeedEntry `json:"entries"`
}

// Store owns the registry file. All writes hold the store mutex around
// the full load-merge-save cycle so concurrent sweeps in one process
// cannot lose entries.
type Store struct {
	path  string
	mu    sync.Mutex
	nowFn func() time.Time
}

// NewStore creates a store rooted at the given registry directory. The
// document lives at <root>/manifests/generated.json.
func NewStore(root string) *Store {
	return &Store{
		path:  filepath.Join(root, "manifests", "generated.json"),
		nowFn: time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (s *Store) WithNow(nowFn func() time.Time) *Store {
	if nowFn != nil {
		s.nowFn = nowFn
	}
	return s
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the registry document. A missing or unparsable file yields
// an empty, version-initialized document: corruption is non-fatal and
// self-heals on the next write.
func (s *Store) Load() Data {
	empty := Data{
		Version:     registryVersion,
		GeneratedAt: s.nowFn().UTC().Format(time.RFC3339),
		Entries:     []SeedEntry{},
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return empty
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.WarnCF("registry", "Registry file unparsable; starting fresh", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return empty
	}
	if data.Version == "" {
		data.Version = registryVersion
	}
	if data.Entries == nil {
		data.Entries = []SeedEntry{}
	}
	return data
}

// Merge folds new entries into an existing document. An entry is
// inserted only if its seed is not already present: first write wins,
// retries never overwrite. Tags are derived for inserted entries, the
// entry count is recomputed, and the generation timestamp refreshed
// unconditionally.
func Merge(existing Data, entries []SeedEntry, now time.Time) Data {
	seen := make(map[uint64]struct{}, len(existing.Entries))
	for _, e := range existing.Entries {
		seen[e.Seed] = struct{}{}
	}

	merged := existing
	for _, entry := range entries {
		if _, dup := seen[entry.Seed]; dup {
			continue
		}
		seen[entry.Seed] = struct{}{}
		if entry.Tags == nil {
			entry.Tags = DeriveTags(entry.Stack)
		}
		if entry.Files == nil {
			entry.Files = []string{}
		}
		merged.Entries = append(merged.Entries, entry)
	}

	if merged.Version == "" {
		merged.Version = registryVersion
	}
	merged.TotalEntries = len(merged.Entries)
	merged.GeneratedAt = now.UTC().Format(time.RFC3339)
	return merged
}

// Append performs a full load-merge-save cycle under the store lock and
// returns the resulting document.
func (s *Store) Append(entries []SeedEntry) (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.Load()
	data = Merge(data, entries, s.nowFn())
	if err := s.save(data); err != nil {
		return Data{}, err
	}
	return data, nil
}

// save writes the document atomically: marshal, write temp, rename.
func (s *Store) save(data Data) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create registry directory: %w", err)
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, raw, 0644); err != nil {
		return fmt.Errorf("write registry temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename registry temp file: %w", err)
	}
	return nil
}

// DeriveTags extracts browsing tags from a resolved stack. Language,
// framework and archetype are taken in that order when present; tags
// are search metadata, never identity.
func DeriveTags(stack map[string]interface{}) []string {
	tags := []string{}
	for _, key := range []string{"language", "framework", "archetype"} {
		if v, ok := stack[key].(string); ok && v != "" {
			tags = append(tags, v)
		}
	}
	return tags
}
