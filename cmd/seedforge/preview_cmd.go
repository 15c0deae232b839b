package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/seedforge/seedforge/pkg/bridge"
)

type previewOptions struct {
	Seed       *uint64
	Stack      bridge.StackConstraints
	StackFile  string
	JSONOutput bool
	ShowFile   string
}

func previewCmd() {
	opts, showHelp, err := parsePreviewOptions(applyDebugFlag(os.Args[2:]))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		previewHelp()
		os.Exit(2)
	}
	if showHelp {
		previewHelp()
		return
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	orch, err := bridge.New(cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	stack, err := resolveStack(opts.Stack, opts.StackFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	result, err := orch.Preview(context.Background(), *opts.Seed, stack)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if opts.ShowFile != "" {
		content, ok := result.Files[opts.ShowFile]
		if !ok {
			fmt.Printf("Error: file %q not in preview for seed %d\n", opts.ShowFile, result.Seed)
			os.Exit(1)
		}
		fmt.Print(content)
		return
	}

	if opts.JSONOutput {
		out, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(out))
		return
	}

	fmt.Printf("Seed %d previews %d file(s)\n", result.Seed, len(result.Files))
	if len(result.Stack) > 0 {
		fmt.Println("\nResolved stack:")
		keys := make([]string, 0, len(result.Stack))
		for k := range result.Stack {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s: %v\n", k, result.Stack[k])
		}
	}
	if len(result.Files) > 0 {
		fmt.Println("\nFiles:")
		paths := make([]string, 0, len(result.Files))
		for p := range result.Files {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			fmt.Printf("  %s (%d bytes)\n", p, len(result.Files[p]))
		}
	}
}

func previewHelp() {
	fmt.Println("\nPreview a seed without writing files:")
	fmt.Printf("  %s preview --seed <n> [flags]\n", cliName)
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --seed <n>          Seed to preview (required)")
	fmt.Println("  --show <path>       Print one previewed file's content")
	fmt.Println("  --stack-file <f>    Read stack constraints from YAML")
	fmt.Println("  --json              Emit the full manifest as JSON")
	fmt.Println("  Stack flags as for generate (--language, --framework, ...)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s preview --seed 42\n", cliName)
	fmt.Printf("  %s preview --seed 42 --show README.md\n", cliName)
	fmt.Printf("  %s preview --seed 42 --language rust --json\n", cliName)
}

func parsePreviewOptions(args []string) (previewOptions, bool, error) {
	opts := previewOptions{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--seed":
			value, next, err := flagValue(args, i)
			if err != nil {
				return opts, false, err
			}
			seed, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return opts, false, fmt.Errorf("invalid seed %q", value)
			}
			opts.Seed = &seed
			i = next
		case "--show":
			value, next, err := flagValue(args, i)
			if err != nil {
				return opts, false, err
			}
			opts.ShowFile = value
			i = next
		case "--stack-file":
			value, next, err := flagValue(args, i)
			if err != nil {
				return opts, false, err
			}
			opts.StackFile = value
			i = next
		case "--json":
			opts.JSONOutput = true
		case "help", "--help", "-h":
			return opts, true, nil
		default:
			consumed, next, err := parseStackFlag(&opts.Stack, args, i)
			if err != nil {
				return opts, false, err
			}
			if !consumed {
				return opts, false, fmt.Errorf("unknown option: %s", args[i])
			}
			i = next
		}
	}

	if opts.Seed == nil {
		return opts, false, fmt.Errorf("--seed is required")
	}
	return opts, false, nil
}
