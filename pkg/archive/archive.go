// Package archive produces snapshot archives of seedforge state so a
// workspace can be moved between machines. Archives are tar streams
// compressed with zstd.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Entry maps one source path to its location inside the archive.
type Entry struct {
	SourcePath  string
	ArchivePath string
}

// CollectEntries returns the snapshot targets that exist on disk:
// configuration, settings, the seed registry and, when withRuns is
// set, the run record history.
func CollectEntries(configPath, settingsPath, registryRoot, workspace string, withRuns bool) []Entry {
	candidates := []Entry{
		{SourcePath: configPath, ArchivePath: "seedforge/config.json"},
		{SourcePath: settingsPath, ArchivePath: "seedforge/settings.json"},
		{SourcePath: filepath.Join(registryRoot, "manifests"), ArchivePath: "registry/manifests"},
	}
	if withRuns {
		candidates = append(candidates, Entry{
			SourcePath:  filepath.Join(workspace, "runs"),
			ArchivePath: "runs",
		})
	}

	existing := make([]Entry, 0, len(candidates))
	for _, entry := range candidates {
		if _, err := os.Stat(entry.SourcePath); err == nil {
			existing = append(existing, entry)
		}
	}
	return existing
}

// Create writes the entries to a tar.zst archive at outputPath.
func Create(outputPath string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	zw, err := zstd.NewWriter(file)
	if err != nil {
		return err
	}
	defer zw.Close()

	tw := tar.NewWriter(zw)
	defer tw.Close()

	for _, entry := range entries {
		info, err := os.Stat(entry.SourcePath)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := addDirectory(tw, entry.SourcePath, entry.ArchivePath); err != nil {
				return err
			}
			continue
		}
		if err := addFile(tw, entry.SourcePath, entry.ArchivePath); err != nil {
			return err
		}
	}
	return nil
}

func addDirectory(tw *tar.Writer, sourceDir, archiveRoot string) error {
	return filepath.Walk(sourceDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}

		target := archiveRoot
		if relPath != "." {
			target = filepath.Join(archiveRoot, relPath)
		}
		target = filepath.ToSlash(target)

		if info.IsDir() {
			return addDirHeader(tw, info, target)
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		return addFile(tw, path, target)
	})
}

func addDirHeader(tw *tar.Writer, info os.FileInfo, archivePath string) error {
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = strings.TrimSuffix(archivePath, "/") + "/"
	return tw.WriteHeader(header)
}

func addFile(tw *tar.Writer, sourcePath, archivePath string) error {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return err
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = archivePath

	if err := tw.WriteHeader(header); err != nil {
		return err
	}

	file, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(tw, file)
	return err
}
