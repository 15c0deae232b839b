package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/seedforge/seedforge/pkg/settings"
)

func settingsCmd() {
	args := os.Args[2:]
	if len(args) == 0 {
		settingsListCmd()
		return
	}

	switch args[0] {
	case "list":
		settingsListCmd()
	case "get":
		if len(args) < 2 {
			fmt.Printf("Usage: %s settings get <key>\n", cliName)
			os.Exit(2)
		}
		settingsGetCmd(args[1])
	case "set":
		if len(args) < 3 {
			fmt.Printf("Usage: %s settings set <key> <value>\n", cliName)
			os.Exit(2)
		}
		settingsSetCmd(args[1], args[2])
	case "unset":
		if len(args) < 2 {
			fmt.Printf("Usage: %s settings unset <key>\n", cliName)
			os.Exit(2)
		}
		settingsUnsetCmd(args[1])
	case "help", "--help", "-h":
		settingsHelp()
	default:
		fmt.Printf("Unknown settings command: %s\n", args[0])
		settingsHelp()
	}
}

func settingsHelp() {
	fmt.Println("\nSettings commands:")
	fmt.Println("  list                 Show all settings (default)")
	fmt.Println("  get <key>            Print one value")
	fmt.Println("  set <key> <value>    Store a value")
	fmt.Println("  unset <key>          Remove a value")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s settings set default_output ~/projects\n", cliName)
	fmt.Printf("  %s settings get default_output\n", cliName)
}

func openSettingsStore() *settings.Store {
	return settings.NewStore(filepath.Dir(getConfigPath()))
}

func settingsListCmd() {
	store := openSettingsStore()
	values, keys, err := store.All()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if len(keys) == 0 {
		fmt.Println("No settings stored.")
		return
	}
	for _, key := range keys {
		fmt.Printf("  %s = %s\n", key, values[key])
	}
}

func settingsGetCmd(key string) {
	value, err := openSettingsStore().Get(key)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

func settingsSetCmd(key, value string) {
	if err := openSettingsStore().Set(key, value); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ %s = %s\n", key, value)
}

func settingsUnsetCmd(key string) {
	if err := openSettingsStore().Delete(key); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ removed %s\n", key)
}
