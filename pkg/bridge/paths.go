package bridge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveOutputPath turns a user-supplied output path into an absolute
// location. Relative paths resolve against the home directory first so
// generated projects land somewhere the user can find them; a packaged
// desktop app's working directory is not the user's shell cwd.
func ResolveOutputPath(raw string, homeDir func() (string, error)) (string, error) {
	path := strings.TrimPrefix(raw, "./")

	if filepath.IsAbs(path) {
		return path, nil
	}

	if homeDir != nil {
		if home, err := homeDir(); err == nil && home != "" {
			return filepath.Join(home, path), nil
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve output path %q: %w", raw, err)
	}
	return filepath.Join(cwd, path), nil
}
