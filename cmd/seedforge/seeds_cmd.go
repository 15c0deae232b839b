package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/seedforge/seedforge/pkg/registry"
)

type seedsOptions struct {
	Tag        string
	JSONOutput bool
}

func seedsCmd() {
	opts, showHelp, err := parseSeedsOptions(applyDebugFlag(os.Args[2:]))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		seedsHelp()
		os.Exit(2)
	}
	if showHelp {
		seedsHelp()
		return
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	store := registry.NewStore(cfg.RegistryRoot())
	data := store.Load()

	entries := data.Entries
	if opts.Tag != "" {
		entries = filterByTag(entries, opts.Tag)
	}

	if opts.JSONOutput {
		out, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Println(string(out))
		return
	}

	if len(entries) == 0 {
		if opts.Tag != "" {
			fmt.Printf("No validated seeds with tag %q.\n", opts.Tag)
		} else {
			fmt.Printf("No validated seeds yet. Run: %s sweep --count 10\n", cliName)
		}
		return
	}

	fmt.Printf("Validated seeds (%d total, registry %s):\n", data.TotalEntries, data.GeneratedAt)
	fmt.Println("-------------------------------------------")
	for _, entry := range entries {
		tags := strings.Join(entry.Tags, ", ")
		fmt.Printf("  %8d  %3d file(s)  %s  [%s]\n", entry.Seed, len(entry.Files), entry.ValidatedAt, tags)
	}
}

func filterByTag(entries []registry.SeedEntry, tag string) []registry.SeedEntry {
	out := make([]registry.SeedEntry, 0, len(entries))
	for _, entry := range entries {
		for _, t := range entry.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, entry)
				break
			}
		}
	}
	return out
}

func seedsHelp() {
	fmt.Println("\nList validated seeds:")
	fmt.Printf("  %s seeds [--tag <tag>] [--json]\n", cliName)
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --tag <tag>   Only seeds carrying this tag (language/framework/archetype)")
	fmt.Println("  --json        Emit entries as JSON")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s seeds\n", cliName)
	fmt.Printf("  %s seeds --tag rust\n", cliName)
	fmt.Printf("  %s seeds --json\n", cliName)
}

func parseSeedsOptions(args []string) (seedsOptions, bool, error) {
	opts := seedsOptions{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--tag":
			value, next, err := flagValue(args, i)
			if err != nil {
				return opts, false, err
			}
			opts.Tag = value
			i = next
		case "--json":
			opts.JSONOutput = true
		case "help", "--help", "-h":
			return opts, true, nil
		default:
			return opts, false, fmt.Errorf("unknown option: %s", args[i])
		}
	}
	return opts, false, nil
}
