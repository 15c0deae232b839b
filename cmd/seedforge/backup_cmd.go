package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/seedforge/seedforge/pkg/archive"
)

type backupOptions struct {
	OutputPath string
	WithRuns   bool
}

func backupCmd() {
	args := os.Args[2:]
	if len(args) > 0 && args[0] == "list" {
		backupListCmd(args[1:])
		return
	}
	backupCreateCmd(args)
}

func backupHelp() {
	fmt.Println("\nBackup commands:")
	fmt.Println("  create                  Create a snapshot archive (default)")
	fmt.Println("  list                    Show files/directories that would be included")
	fmt.Println()
	fmt.Println("Create options:")
	fmt.Println("  -o, --output <path>     Output tar.zst path")
	fmt.Println("  --with-runs             Include run record history")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s backup\n", cliName)
	fmt.Printf("  %s backup list\n", cliName)
	fmt.Printf("  %s backup --output ~/Desktop/seedforge-backup.tar.zst\n", cliName)
}

func backupCreateCmd(args []string) {
	opts, showHelp, err := parseBackupOptions(args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		backupHelp()
		return
	}
	if showHelp {
		backupHelp()
		return
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Printf("Error resolving home directory: %v\n", err)
		os.Exit(1)
	}

	entries := collectBackupEntries(cfg.RegistryRoot(), cfg.WorkspacePath(), opts.WithRuns)
	if len(entries) == 0 {
		fmt.Println("Nothing to back up yet.")
		return
	}

	if opts.OutputPath == "" {
		opts.OutputPath = defaultBackupPath(homeDir)
	}
	opts.OutputPath = expandHomePath(opts.OutputPath, homeDir)

	if err := archive.Create(opts.OutputPath, entries); err != nil {
		fmt.Printf("Error creating backup archive: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Backup created: %s\n", opts.OutputPath)
	fmt.Printf("  Included %d path(s)\n", len(entries))
}

func backupListCmd(args []string) {
	opts, showHelp, err := parseBackupOptions(args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		backupHelp()
		return
	}
	if showHelp {
		backupHelp()
		return
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	entries := collectBackupEntries(cfg.RegistryRoot(), cfg.WorkspacePath(), opts.WithRuns)
	if len(entries) == 0 {
		fmt.Println("No backup targets found.")
		return
	}

	fmt.Println("\nBackup targets:")
	fmt.Println("---------------")
	for _, entry := range entries {
		fmt.Printf("  %s -> %s\n", entry.SourcePath, entry.ArchivePath)
	}
}

func collectBackupEntries(registryRoot, workspace string, withRuns bool) []archive.Entry {
	settingsPath := filepath.Join(filepath.Dir(getConfigPath()), "settings.json")
	return archive.CollectEntries(getConfigPath(), settingsPath, registryRoot, workspace, withRuns)
}

func parseBackupOptions(args []string) (backupOptions, bool, error) {
	opts := backupOptions{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--with-runs":
			opts.WithRuns = true
		case "-o", "--output":
			if i+1 >= len(args) {
				return opts, false, fmt.Errorf("%s requires a value", args[i])
			}
			opts.OutputPath = args[i+1]
			i++
		case "help", "--help", "-h":
			return opts, true, nil
		default:
			return opts, false, fmt.Errorf("unknown option: %s", args[i])
		}
	}
	return opts, false, nil
}

func defaultBackupPath(homeDir string) string {
	timestamp := time.Now().UTC().Format("20060102-150405")
	return filepath.Join(homeDir, ".seedforge", "backups", fmt.Sprintf("seedforge-backup-%s.tar.zst", timestamp))
}

func expandHomePath(path string, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
