package bridge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const maxStoredOutputChars = 20000

// RunRecord is the audit trail for one generator invocation. Records
// are written best-effort; a store failure never fails the request.
type RunRecord struct {
	EventID    string   `json:"event_id"`
	Timestamp  string   `json:"timestamp"`
	Action     string   `json:"action"`
	Seed       uint64   `json:"seed"`
	Command    []string `json:"command"`
	CWD        string   `json:"cwd"`
	ExitCode   int      `json:"exit_code"`
	Success    bool     `json:"success"`
	DurationMs int64    `json:"duration_ms"`
	Stdout     string   `json:"stdout,omitempty"`
	Stderr     string   `json:"stderr,omitempty"`
	Error      string   `json:"error,omitempty"`
	StorePath  string   `json:"store_path,omitempty"`
}

// runStore persists run records under <workspace>/runs, sharded by day.
type runStore struct {
	baseDir string
	nowFn   func() time.Time
}

func newRunStore(workspace string) *runStore {
	return &runStore{
		baseDir: filepath.Join(workspace, "runs"),
		nowFn:   time.Now,
	}
}

func (s *runStore) withNow(nowFn func() time.Time) *runStore {
	if nowFn != nil {
		s.nowFn = nowFn
	}
	return s
}

func (s *runStore) write(record *RunRecord) (string, error) {
	now := s.nowFn().UTC()
	dayDir := filepath.Join(
		s.baseDir,
		now.Format("2006"),
		now.Format("01"),
		now.Format("02"),
	)
	if err := os.MkdirAll(dayDir, 0755); err != nil {
		return "", err
	}

	recordPath := filepath.Join(dayDir, record.EventID+".json")
	tmpPath := recordPath + ".tmp"

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, recordPath); err != nil {
		return "", err
	}
	return recordPath, nil
}

func trimForStore(s string) string {
	if len(s) <= maxStoredOutputChars {
		return s
	}
	return s[:maxStoredOutputChars] + "\n... (truncated)"
}
