package bridge

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestExecutorCapturesBothStreams(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture is unix-only")
	}

	script := writeScript(t, "gen", `echo "out line"
echo "err line" >&2
`)
	outcome, err := NewExecutor(0).Run(context.Background(), script, nil, "")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !outcome.Success {
		t.Fatalf("expected success outcome")
	}
	if outcome.ExitCode == nil || *outcome.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %v", outcome.ExitCode)
	}
	if !strings.Contains(outcome.Stdout, "out line") {
		t.Fatalf("missing stdout capture: %q", outcome.Stdout)
	}
	if !strings.Contains(outcome.Stderr, "err line") {
		t.Fatalf("missing stderr capture: %q", outcome.Stderr)
	}
}

func TestExecutorNonZeroExitIsNotAnError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture is unix-only")
	}

	script := writeScript(t, "gen", `echo "boom" >&2
exit 3
`)
	outcome, err := NewExecutor(0).Run(context.Background(), script, nil, "")
	if err != nil {
		t.Fatalf("non-zero exit must not be an error, got %v", err)
	}
	if outcome.Success {
		t.Fatalf("expected failure outcome")
	}
	if outcome.ExitCode == nil || *outcome.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %v", outcome.ExitCode)
	}
}

func TestExecutorNormalizesEnvironment(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture is unix-only")
	}

	script := writeScript(t, "gen", `echo "NO_COLOR=$NO_COLOR TERM=$TERM"
`)
	t.Setenv("TERM", "xterm-256color")

	outcome, err := NewExecutor(0).Run(context.Background(), script, nil, "")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(outcome.Stdout, "NO_COLOR=1") {
		t.Fatalf("expected NO_COLOR=1 in environment, got %q", outcome.Stdout)
	}
	if !strings.Contains(outcome.Stdout, "TERM=dumb") {
		t.Fatalf("expected TERM=dumb in environment, got %q", outcome.Stdout)
	}
}

func TestExecutorSpawnFault(t *testing.T) {
	_, err := NewExecutor(0).Run(context.Background(), filepath.Join(t.TempDir(), "missing"), nil, "")
	if err == nil || !strings.Contains(err.Error(), "failed to execute generator") {
		t.Fatalf("expected spawn fault error, got %v", err)
	}
}

func TestExecutorTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture is unix-only")
	}

	script := writeScript(t, "gen", `sleep 5
`)
	_, err := NewExecutor(100 * time.Millisecond).Run(context.Background(), script, nil, "")
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestExecutorRunsInWorkingDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture is unix-only")
	}

	script := writeScript(t, "gen", `pwd
`)
	workDir := t.TempDir()
	outcome, err := NewExecutor(0).Run(context.Background(), script, nil, workDir)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	got := strings.TrimSpace(outcome.Stdout)
	resolved, err := filepath.EvalSymlinks(workDir)
	if err != nil {
		t.Fatalf("eval symlinks: %v", err)
	}
	if got != workDir && got != resolved {
		t.Fatalf("expected working dir %q, got %q", workDir, got)
	}
}

func TestMergeEnvOverridesWithoutDuplicates(t *testing.T) {
	merged := mergeEnv([]string{"TERM=xterm", "HOME=/home/dev"}, map[string]string{"TERM": "dumb"})
	var termCount int
	for _, kv := range merged {
		if strings.HasPrefix(kv, "TERM=") {
			termCount++
			if kv != "TERM=dumb" {
				t.Fatalf("expected TERM=dumb, got %q", kv)
			}
		}
	}
	if termCount != 1 {
		t.Fatalf("expected exactly one TERM entry, got %d", termCount)
	}
}

func TestDecodePermissive(t *testing.T) {
	got := decodePermissive([]byte{'o', 'k', 0xff, '!'})
	if !strings.HasPrefix(got, "ok") || !strings.HasSuffix(got, "!") {
		t.Fatalf("expected surrounding bytes preserved, got %q", got)
	}
	if strings.Contains(got, "\xff") {
		t.Fatalf("expected invalid byte replaced, got %q", got)
	}
}
