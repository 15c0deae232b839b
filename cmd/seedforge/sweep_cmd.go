package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/seedforge/seedforge/pkg/bridge"
)

type sweepOptions struct {
	Count      int
	StartSeed  uint64
	Workers    int
	JSONOutput bool
}

func sweepCmd() {
	opts, showHelp, err := parseSweepOptions(applyDebugFlag(os.Args[2:]))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		sweepHelp()
		os.Exit(2)
	}
	if showHelp {
		sweepHelp()
		return
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	orch, err := bridge.NewWithOptions(cfg, bridge.Options{SweepWorkers: opts.Workers})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	entries, err := orch.Sweep(context.Background(), opts.Count, opts.StartSeed)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if opts.JSONOutput {
		out, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Println(string(out))
		return
	}

	fmt.Printf("✓ Validated %d of %d seed(s)\n", len(entries), opts.Count)
	for _, entry := range entries {
		tags := strings.Join(entry.Tags, ", ")
		fmt.Printf("  seed %d: %d file(s) [%s]\n", entry.Seed, len(entry.Files), tags)
	}
	fmt.Printf("  Registry: %s\n", orch.Registry().Path())
}

func sweepHelp() {
	fmt.Println("\nValidate a seed range and record the survivors:")
	fmt.Printf("  %s sweep --count <n> [--start <seed>] [flags]\n", cliName)
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --count <n>     Number of consecutive seeds to try (required)")
	fmt.Println("  --start <seed>  First seed in the range (default: 1)")
	fmt.Println("  --workers <n>   Parallel preview workers (default: from config)")
	fmt.Println("  --json          Emit validated entries as JSON")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s sweep --count 100\n", cliName)
	fmt.Printf("  %s sweep --count 50 --start 1000 --workers 8\n", cliName)
}

func parseSweepOptions(args []string) (sweepOptions, bool, error) {
	opts := sweepOptions{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--count":
			value, next, err := flagValue(args, i)
			if err != nil {
				return opts, false, err
			}
			count, err := strconv.Atoi(value)
			if err != nil || count <= 0 {
				return opts, false, fmt.Errorf("invalid count %q", value)
			}
			opts.Count = count
			i = next
		case "--start":
			value, next, err := flagValue(args, i)
			if err != nil {
				return opts, false, err
			}
			seed, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return opts, false, fmt.Errorf("invalid start seed %q", value)
			}
			opts.StartSeed = seed
			i = next
		case "--workers":
			value, next, err := flagValue(args, i)
			if err != nil {
				return opts, false, err
			}
			workers, err := strconv.Atoi(value)
			if err != nil || workers <= 0 {
				return opts, false, fmt.Errorf("invalid workers %q", value)
			}
			opts.Workers = workers
			i = next
		case "--json":
			opts.JSONOutput = true
		case "help", "--help", "-h":
			return opts, true, nil
		default:
			return opts, false, fmt.Errorf("unknown option: %s", args[i])
		}
	}

	if opts.Count == 0 {
		return opts, false, fmt.Errorf("--count is required")
	}
	return opts, false, nil
}
