package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/seedforge/seedforge/pkg/bridge"
	"github.com/seedforge/seedforge/pkg/config"
	"github.com/seedforge/seedforge/pkg/registry"
)

type doctorCheck struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

func doctorCmd() {
	jsonOutput := false
	for _, arg := range os.Args[2:] {
		switch arg {
		case "--json":
			jsonOutput = true
		case "help", "--help", "-h":
			doctorHelp()
			return
		default:
			fmt.Printf("Unknown option: %s\n", arg)
			doctorHelp()
			os.Exit(2)
		}
	}

	checks := runDoctorChecks()

	if jsonOutput {
		out, _ := json.MarshalIndent(checks, "", "  ")
		fmt.Println(string(out))
	} else {
		fmt.Printf("%s doctor\n", cliName)
		fmt.Println("----------------")
		for _, check := range checks {
			mark := "✓"
			if !check.OK {
				mark = "✗"
			}
			fmt.Printf("  %s %-16s %s\n", mark, check.Name, check.Detail)
		}
	}

	for _, check := range checks {
		if !check.OK {
			os.Exit(1)
		}
	}
}

func doctorHelp() {
	fmt.Println("\nCheck deployment health:")
	fmt.Printf("  %s doctor [--json]\n", cliName)
	fmt.Println()
	fmt.Println("Verifies the config file, deployment mode, generator resolvability,")
	fmt.Println("node availability (development mode) and the seed registry.")
}

func runDoctorChecks() []doctorCheck {
	checks := []doctorCheck{}

	configPath := getConfigPath()
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		checks = append(checks, doctorCheck{"config", false, fmt.Sprintf("%s: %v", configPath, err)})
		return checks
	}
	checks = append(checks, doctorCheck{"config", true, configPath})

	mode, err := bridge.ParseDeploymentMode(cfg.Deployment.Mode)
	if err != nil {
		checks = append(checks, doctorCheck{"deployment", false, err.Error()})
		return checks
	}
	checks = append(checks, doctorCheck{"deployment", true, string(mode)})

	if mode == bridge.ModeDevelopment {
		if nodePath, err := exec.LookPath("node"); err == nil {
			checks = append(checks, doctorCheck{"node", true, nodePath})
		} else {
			checks = append(checks, doctorCheck{"node", false, "node not found in PATH"})
		}
	}

	resolver := bridge.NewCommandResolver(mode, cfg.WorkspacePath(), cfg.Deployment.ResourceRoot)
	if cmd, err := resolver.Resolve(); err == nil {
		detail := cmd.Executable
		if len(cmd.BaseArgs) > 0 {
			detail = cmd.BaseArgs[0]
		}
		checks = append(checks, doctorCheck{"generator", true, detail})
	} else {
		checks = append(checks, doctorCheck{"generator", false, err.Error()})
	}

	store := registry.NewStore(cfg.RegistryRoot())
	data := store.Load()
	checks = append(checks, doctorCheck{
		"registry", true,
		fmt.Sprintf("%s (%d entries)", store.Path(), data.TotalEntries),
	})

	workspace := cfg.WorkspacePath()
	if err := os.MkdirAll(workspace, 0755); err == nil {
		checks = append(checks, doctorCheck{"workspace", true, workspace})
	} else {
		checks = append(checks, doctorCheck{"workspace", false, fmt.Sprintf("%s: %v", workspace, err)})
	}

	return checks
}
