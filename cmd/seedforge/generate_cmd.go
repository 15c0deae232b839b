package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/seedforge/seedforge/pkg/bridge"
)

type generateOptions struct {
	Seed       *uint64
	OutputPath string
	Stack      bridge.StackConstraints
	StackFile  string
	Enrich     bridge.EnrichmentConfig
	JSONOutput bool
}

func generateCmd() {
	opts, showHelp, err := parseGenerateOptions(applyDebugFlag(os.Args[2:]))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		generateHelp()
		os.Exit(2)
	}
	if showHelp {
		generateHelp()
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

	req := bridge.GenerationRequest{
		Mode:       bridge.ModeProcedural,
		Seed:       opts.Seed,
		OutputPath: opts.OutputPath,
	}
	stack, err := resolveStack(opts.Stack, opts.StackFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	req.Stack = stack
	if opts.Enrich.Enabled {
		enrich := opts.Enrich
		req.Enrichment = &enrich
	}

	result, err := orch.Generate(context.Background(), req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if opts.JSONOutput {
		out, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(out))
		if !result.Success {
			os.Exit(1)
		}
		return
	}

	if !result.Success {
		fmt.Printf("✗ %s\n", result.Message)
		os.Exit(1)
	}
	fmt.Printf("✓ %s\n", result.Message)
	fmt.Printf("  Output: %s\n", result.OutputPath)
	fmt.Printf("  Files: %d\n", len(result.FilesGenerated))
	fmt.Printf("  Duration: %dms\n", result.DurationMs)
}

func generateHelp() {
	fmt.Println("\nGenerate a project from a seed:")
	fmt.Printf("  %s generate --seed <n> --output <dir> [flags]\n", cliName)
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --seed <n>              Seed to generate (required)")
	fmt.Println("  -o, --output <dir>      Output directory")
	fmt.Println("  --archetype <v>         Pin the project archetype")
	fmt.Println("  --language <v>          Pin the language")
	fmt.Println("  --framework <v>         Pin the framework")
	fmt.Println("  --database <v>          Pin the database")
	fmt.Println("  --packaging <v>         Pin the packaging")
	fmt.Println("  --cicd <v>              Pin the CI/CD platform")
	fmt.Println("  --stack-file <f>        Read stack constraints from YAML")
	fmt.Println("  --enrich                Enable the enrichment pass")
	fmt.Println("  --enrich-depth <d>      Enrichment depth (default: standard)")
	fmt.Println("  --no-enrich-tests       Disable a single enrichment feature (also:")
	fmt.Println("                          cicd, release, fill-logic, docker-prod,")
	fmt.Println("                          linting, env-files, docs)")
	fmt.Println("  --json                  Emit the result as JSON")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s generate --seed 42 -o projects/demo\n", cliName)
	fmt.Printf("  %s generate --seed 42 -o demo --language go --framework echo\n", cliName)
	fmt.Printf("  %s generate --seed 42 -o demo --enrich --no-enrich-docs\n", cliName)
}

func parseGenerateOptions(args []string) (generateOptions, bool, error) {
	opts := generateOptions{}
	falseVal := false

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
		case "-o", "--output":
			value, next, err := flagValue(args, i)
			if err != nil {
				return opts, false, err
			}
			opts.OutputPath = value
			i = next
		case "--stack-file":
			value, next, err := flagValue(args, i)
			if err != nil {
				return opts, false, err
			}
			opts.StackFile = value
			i = next
		case "--enrich":
			opts.Enrich.Enabled = true
		case "--enrich-depth":
			value, next, err := flagValue(args, i)
			if err != nil {
				return opts, false, err
			}
			opts.Enrich.Depth = value
			i = next
		case "--no-enrich-cicd":
			opts.Enrich.CICD = &falseVal
		case "--no-enrich-release":
			opts.Enrich.Release = &falseVal
		case "--no-enrich-fill-logic":
			opts.Enrich.FillLogic = &falseVal
		case "--no-enrich-tests":
			opts.Enrich.Tests = &falseVal
		case "--no-enrich-docker-prod":
			opts.Enrich.DockerProd = &falseVal
		case "--no-enrich-linting":
			opts.Enrich.Linting = &falseVal
		case "--no-enrich-env-files":
			opts.Enrich.EnvFiles = &falseVal
		case "--no-enrich-docs":
			opts.Enrich.Docs = &falseVal
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
	if opts.OutputPath == "" {
		return opts, false, fmt.Errorf("--output is required")
	}
	return opts, false, nil
}
