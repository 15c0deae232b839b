package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/seedforge/seedforge/pkg/config"
	"github.com/seedforge/seedforge/pkg/logger"
)

var (
	version   = "dev"
	buildTime string
)

const cliName = "seedforge"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "generate":
		generateCmd()
	case "preview":
		previewCmd()
	case "sweep":
		sweepCmd()
	case "seeds":
		seedsCmd()
	case "settings":
		settingsCmd()
	case "exec":
		execCmd()
	case "doctor":
		doctorCmd()
	case "backup":
		backupCmd()
	case "browse":
		browseCmd()
	case "version", "--version", "-v":
		printVersion()
	case "help", "--help", "-h":
		printHelp()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("%s v%s\n", cliName, version)
	if buildTime != "" {
		fmt.Printf("  Build: %s\n", buildTime)
	}
	fmt.Printf("  Go: %s\n", runtime.Version())
}

func printHelp() {
	fmt.Printf("%s - deterministic project generation v%s\n\n", cliName, version)
	fmt.Printf("Usage: %s <command>\n", cliName)
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  generate    Generate a project from a seed")
	fmt.Println("  preview     Preview a seed's output without writing files")
	fmt.Println("  sweep       Validate a range of seeds and update the registry")
	fmt.Println("  seeds       List validated seeds from the registry")
	fmt.Println("  browse      Browse seeds and settings interactively")
	fmt.Println("  settings    Get and set user preferences")
	fmt.Println("  exec        Run the generator with raw arguments")
	fmt.Println("  doctor      Check deployment health and dependencies")
	fmt.Println("  backup      Snapshot configuration, settings and the registry")
	fmt.Println("  version     Show version information")
	fmt.Println()
	fmt.Println("Generate flags:")
	fmt.Println("  --seed <n>          Seed to generate (required)")
	fmt.Println("  -o, --output <dir>  Output directory (relative paths resolve under $HOME)")
	fmt.Println("  --language <v>      Pin a stack dimension (also: --archetype, --framework,")
	fmt.Println("                      --database, --packaging, --cicd)")
	fmt.Println("  --stack-file <f>    Read stack constraints from a YAML file")
	fmt.Println("  --enrich            Enable the enrichment pass")
}

func getConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".seedforge", "config.json")
}

func loadCLIConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, err
	}
	logger.SetLevel(cfg.Log.Level)
	return cfg, nil
}

// applyDebugFlag turns on debug logging when --debug/-d appears anywhere
// in the argument list, and returns the list with the flag removed.
func applyDebugFlag(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			logger.SetLevel("debug")
			continue
		}
		out = append(out, arg)
	}
	return out
}
