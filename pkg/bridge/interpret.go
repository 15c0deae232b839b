package bridge

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// generatorResponse is the bridge's structured output contract. Older
// generator versions nest the payload under data; newer ones emit the
// fields at the top level. Both are accepted.
type generatorResponse struct {
	Success        *bool                  `json:"success"`
	Data           map[string]interface{} `json:"data"`
	FilesGenerated []string               `json:"files_generated"`
	Message        string                 `json:"message"`
	Error          string                 `json:"error"`
	DurationMs     *int64                 `json:"durationMs"`
}

const (
	defaultSuccessMessage = "Generation completed"
	defaultFailureMessage = "Unknown error"
)

// Interpreter classifies a captured process outcome into a typed
// result. The fallback strategy is an explicit ordered chain; each step
// either produces a definite result or defers to the next:
//
//  1. structured: stdout parses as the expected JSON response shape
//  2. exit status: trust the exit code, enumerating files on disk for
//     success instead of any manifest
//  3. (inside 2, on failure) raw-text heuristic: last non-empty line of
//     stderr, then stdout, then a synthesized message from the exit code
//
// The generator's output contract has drifted across versions, so
// malformed JSON is absorbed here rather than surfaced as an error.
type Interpreter struct {
	// Enumerate lists generated files when the generator succeeds
	// without emitting a structured manifest.
	Enumerate func(root string) []string
}

func NewInterpreter() *Interpreter {
	return &Interpreter{Enumerate: EnumerateFiles}
}

// InterpretGeneration produces the caller-facing result for a generate
// run. Generator-reported failures come back as Success=false results,
// never as errors.
func (in *Interpreter) InterpretGeneration(outcome ProcessOutcome, outputPath string, elapsed time.Duration) GenerationResult {
	steps := []func(ProcessOutcome, string, time.Duration) (GenerationResult, bool){
		in.structuredGeneration,
		in.exitStatusGeneration,
	}
	for _, step := range steps {
		if result, ok := step(outcome, outputPath, elapsed); ok {
			return result
		}
	}
	// The exit-status step always handles; this is unreachable.
	return GenerationResult{OutputPath: outputPath, DurationMs: elapsed.Milliseconds()}
}

func (in *Interpreter) structuredGeneration(outcome ProcessOutcome, outputPath string, elapsed time.Duration) (GenerationResult, bool) {
	resp, ok := parseResponse(outcome.Stdout)
	if !ok {
		return GenerationResult{}, false
	}

	result := GenerationResult{
		OutputPath: outputPath,
		DurationMs: elapsed.Milliseconds(),
	}
	if resp.DurationMs != nil {
		result.DurationMs = *resp.DurationMs
	}

	if *resp.Success {
		result.Success = true
		result.FilesGenerated = resp.filesGenerated()
		result.Message = resp.message()
		return result, true
	}

	result.FilesGenerated = []string{}
	result.Message = resp.errorMessage()
	return result, true
}

func (in *Interpreter) exitStatusGeneration(outcome ProcessOutcome, outputPath string, elapsed time.Duration) (GenerationResult, bool) {
	result := GenerationResult{
		OutputPath: outputPath,
		DurationMs: elapsed.Milliseconds(),
	}

	if outcome.Success {
		// The generator exited clean without structured output; trust
		// the disk over any manifest.
		result.Success = true
		files := []string{}
		if in.Enumerate != nil {
			if listed := in.Enumerate(outputPath); listed != nil {
				files = listed
			}
		}
		result.FilesGenerated = files
		result.Message = defaultSuccessMessage
		return result, true
	}

	result.FilesGenerated = []string{}
	result.Message = failureMessageFromStreams(outcome)
	return result, true
}

// InterpretPreview produces the preview result. Preview has no on-disk
// fallback: without a parseable payload there is nothing to return, so
// degraded output surfaces as an error carrying the best message the
// streams offer.
func (in *Interpreter) InterpretPreview(outcome ProcessOutcome, seed uint64) (PreviewResult, error) {
	resp, ok := parseResponse(outcome.Stdout)
	if !ok {
		return PreviewResult{}, fmt.Errorf("preview failed: %s", failureMessageFromStreams(outcome))
	}

	if !*resp.Success {
		return PreviewResult{}, fmt.Errorf("preview failed: %s", resp.errorMessage())
	}

	return PreviewResult{
		Files: resp.previewFiles(),
		Stack: resp.previewStack(),
		Seed:  seed,
	}, nil
}

// parseResponse attempts the strict tier of the fallback chain: stdout
// must be a well-formed JSON object carrying a success flag.
func parseResponse(stdout string) (*generatorResponse, bool) {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return nil, false
	}
	var resp generatorResponse
	if err := json.Unmarshal([]byte(trimmed), &resp); err != nil {
		return nil, false
	}
	if resp.Success == nil {
		return nil, false
	}
	return &resp, true
}

func failureMessageFromStreams(outcome ProcessOutcome) string {
	if line := lastNonEmptyLine(outcome.Stderr); line != "" {
		return line
	}
	if line := lastNonEmptyLine(outcome.Stdout); line != "" {
		return line
	}
	code := -1
	if outcome.ExitCode != nil {
		code = *outcome.ExitCode
	}
	return fmt.Sprintf("generator exited with code %d", code)
}

func lastNonEmptyLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

func (r *generatorResponse) filesGenerated() []string {
	if len(r.FilesGenerated) > 0 {
		return r.FilesGenerated
	}
	files := []string{}
	raw, ok := r.Data["files_generated"].([]interface{})
	if !ok {
		return files
	}
	for _, v := range raw {
		if s, ok := v.(string); ok {
			files = append(files, s)
		}
	}
	return files
}

func (r *generatorResponse) message() string {
	if r.Message != "" {
		return r.Message
	}
	if msg, ok := r.Data["message"].(string); ok && msg != "" {
		return msg
	}
	return defaultSuccessMessage
}

func (r *generatorResponse) errorMessage() string {
	if r.Error != "" {
		return r.Error
	}
	return defaultFailureMessage
}

func (r *generatorResponse) previewFiles() map[string]string {
	files := map[string]string{}
	raw, ok := r.Data["files"].(map[string]interface{})
	if !ok {
		return files
	}
	for path, content := range raw {
		if s, ok := content.(string); ok {
			files[path] = s
		}
	}
	return files
}

func (r *generatorResponse) previewStack() map[string]interface{} {
	stack, ok := r.Data["stack"].(map[string]interface{})
	if !ok {
		return nil
	}
	return stack
}
