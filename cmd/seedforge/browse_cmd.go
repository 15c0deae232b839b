package main

import (
	"fmt"
	"os"

	"github.com/seedforge/seedforge/cmd/seedforge/tui"
	"github.com/seedforge/seedforge/pkg/registry"
)

func browseCmd() {
	for _, arg := range os.Args[2:] {
		if arg == "help" || arg == "--help" || arg == "-h" {
			fmt.Println("\nBrowse validated seeds and settings interactively:")
			fmt.Printf("  %s browse\n", cliName)
			return
		}
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	registryStore := registry.NewStore(cfg.RegistryRoot())
	tui.Run(registryStore, openSettingsStore())
}
