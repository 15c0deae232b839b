package main

import (
	"context"
	"fmt"
	"os"

	"github.com/seedforge/seedforge/pkg/bridge"
)

// execCmd runs the generator with raw arguments, no interpretation.
// Useful for poking at bridge actions the CLI doesn't wrap yet.
func execCmd() {
	args := applyDebugFlag(os.Args[2:])
	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		execHelp()
		return
	}
	if len(args) == 0 {
		execHelp()
		os.Exit(2)
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	mode, err := bridge.ParseDeploymentMode(cfg.Deployment.Mode)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	resolver := bridge.NewCommandResolver(mode, cfg.WorkspacePath(), cfg.Deployment.ResourceRoot)
	cmd, err := resolver.Resolve()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	executor := bridge.NewExecutor(cfg.GeneratorTimeout())
	outcome, err := executor.Run(context.Background(), cmd.Executable, append(cmd.BaseArgs, args...), cmd.WorkingDir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if outcome.Stdout != "" {
		fmt.Print(outcome.Stdout)
	}
	if outcome.Stderr != "" {
		fmt.Fprint(os.Stderr, outcome.Stderr)
	}
	if outcome.ExitCode != nil && *outcome.ExitCode != 0 {
		os.Exit(*outcome.ExitCode)
	}
}

func execHelp() {
	fmt.Println("\nRun the generator with raw arguments:")
	fmt.Printf("  %s exec <generator args...>\n", cliName)
	fmt.Println()
	fmt.Println("The resolved generator (bridge script or packaged binary) runs with")
	fmt.Println("the given arguments verbatim; stdout, stderr and the exit code pass")
	fmt.Println("through unmodified.")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s exec --version\n", cliName)
	fmt.Printf("  %s exec preview 42\n", cliName)
}
