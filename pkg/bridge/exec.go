package bridge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

const defaultGeneratorTimeout = 120 * time.Second

// Executor runs the resolved generator command synchronously, capturing
// both streams in full. The environment is normalized to keep the
// output machine-readable: ANSI color is disabled and the terminal type
// forced dumb so progress spinners don't corrupt captured stdout.
type Executor struct {
	timeout time.Duration
}

func NewExecutor(timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = defaultGeneratorTimeout
	}
	return &Executor{timeout: timeout}
}

// Run executes the command and returns its outcome. The returned error
// is non-nil only for spawn faults (binary missing, permission denied)
// and timeouts; a non-zero exit is reported through the outcome and
// left to the interpreter.
func (e *Executor) Run(ctx context.Context, executable string, args []string, workingDir string) (ProcessOutcome, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, executable, args...)
	if workingDir != "" {
		cmd.Dir = workingDir
	}
	cmd.Env = mergeEnv(os.Environ(), map[string]string{
		"NO_COLOR": "1",
		"TERM":     "dumb",
	})

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	outcome := ProcessOutcome{
		Stdout: decodePermissive(stdout.Bytes()),
		Stderr: decodePermissive(stderr.Bytes()),
	}

	if runErr == nil {
		code := 0
		outcome.ExitCode = &code
		outcome.Success = true
		return outcome, nil
	}

	if cmdCtx.Err() == context.DeadlineExceeded {
		return outcome, fmt.Errorf("generator timed out after %v: %s %s", e.timeout, executable, strings.Join(args, " "))
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		code := exitErr.ExitCode()
		outcome.ExitCode = &code
		return outcome, nil
	}

	// Process never started. Include the attempted command line for
	// diagnosability.
	return outcome, fmt.Errorf("failed to execute generator: %w (command: %s %s)", runErr, executable, strings.Join(args, " "))
}

// decodePermissive converts captured bytes to a string, replacing
// invalid UTF-8 sequences instead of failing.
func decodePermissive(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}

func mergeEnv(base []string, overrides map[string]string) []string {
	out := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		keep := true
		for k := range overrides {
			if strings.HasPrefix(kv, k+"=") {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, kv)
		}
	}
	for k, v := range overrides {
		out = append(out, k+"="+v)
	}
	return out
}
