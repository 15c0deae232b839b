package bridge

import (
	"io/fs"
	"path/filepath"
)

// EnumerateFiles recursively lists files under root as slash-separated
// relative paths. It is a best-effort diagnostic aid: an unreadable or
// missing root yields an empty list, never an error.
func EnumerateFiles(root string) []string {
	var files []string

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})

	return files
}
