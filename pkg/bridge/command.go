package bridge

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DeploymentMode selects how the external generator ships: as a bridge
// script run through node (development) or as a bundled standalone
// binary per platform (packaged). Injected at startup so the same
// binary and tests can exercise both paths.
type DeploymentMode string

const (
	ModeDevelopment DeploymentMode = "development"
	ModePackaged    DeploymentMode = "packaged"
)

// ParseDeploymentMode validates a mode string from config.
func ParseDeploymentMode(s string) (DeploymentMode, error) {
	switch DeploymentMode(s) {
	case ModeDevelopment, ModePackaged:
		return DeploymentMode(s), nil
	}
	return "", fmt.Errorf("unknown deployment mode %q (want development or packaged)", s)
}

const bridgeScriptRelPath = "scripts/generator-bridge.mjs"

// ResolvedCommand is an executable invocation ready for the executor.
type ResolvedCommand struct {
	Executable string
	BaseArgs   []string
	WorkingDir string
}

// CommandResolver maps a deployment mode and platform onto the concrete
// generator invocation. Workspace and resource roots are explicit
// configuration; nothing is discovered relative to the running binary.
type CommandResolver struct {
	mode          DeploymentMode
	workspaceRoot string
	resourceRoot  string
	goos          string
	goarch        string
	statFn        func(string) (os.FileInfo, error)
}

type CommandResolverOptions struct {
	GOOS   string
	GOARCH string
	StatFn func(string) (os.FileInfo, error)
}

func NewCommandResolver(mode DeploymentMode, workspaceRoot, resourceRoot string) *CommandResolver {
	return NewCommandResolverWithOptions(mode, workspaceRoot, resourceRoot, CommandResolverOptions{})
}

func NewCommandResolverWithOptions(mode DeploymentMode, workspaceRoot, resourceRoot string, opts CommandResolverOptions) *CommandResolver {
	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	goarch := opts.GOARCH
	if goarch == "" {
		goarch = runtime.GOARCH
	}
	statFn := opts.StatFn
	if statFn == nil {
		statFn = os.Stat
	}
	return &CommandResolver{
		mode:          mode,
		workspaceRoot: workspaceRoot,
		resourceRoot:  resourceRoot,
		goos:          goos,
		goarch:        goarch,
		statFn:        statFn,
	}
}

// Resolve returns the generator invocation for the configured mode.
func (r *CommandResolver) Resolve() (ResolvedCommand, error) {
	switch r.mode {
	case ModeDevelopment:
		return r.resolveDevelopment()
	case ModePackaged:
		return r.resolvePackaged()
	}
	return ResolvedCommand{}, fmt.Errorf("unknown deployment mode %q", r.mode)
}

func (r *CommandResolver) resolveDevelopment() (ResolvedCommand, error) {
	script := filepath.Join(r.workspaceRoot, filepath.FromSlash(bridgeScriptRelPath))
	if _, err := r.statFn(script); err != nil {
		return ResolvedCommand{}, fmt.Errorf("generator bridge script not found at %s; build the generator first", script)
	}
	return ResolvedCommand{
		Executable: "node",
		BaseArgs:   []string{script},
		WorkingDir: r.workspaceRoot,
	}, nil
}

func (r *CommandResolver) resolvePackaged() (ResolvedCommand, error) {
	name, err := packagedBinaryName(r.goos, r.goarch)
	if err != nil {
		return ResolvedCommand{}, err
	}

	candidates := []string{
		filepath.Join(r.resourceRoot, name),
		filepath.Join(r.resourceRoot, "binaries", name),
	}
	for _, candidate := range candidates {
		if _, err := r.statFn(candidate); err == nil {
			return ResolvedCommand{
				Executable: candidate,
				WorkingDir: r.resourceRoot,
			}, nil
		}
	}
	return ResolvedCommand{}, fmt.Errorf(
		"packaging error: generator binary %s not found in %s (searched bundle root and binaries/)",
		name, r.resourceRoot,
	)
}

// packagedBinaryName follows the generator's release naming convention:
// generator-{os}-{arch} with target-triple arch tokens and a .exe
// suffix on Windows.
func packagedBinaryName(goos, goarch string) (string, error) {
	var osToken string
	switch goos {
	case "linux", "darwin", "windows":
		osToken = goos
	default:
		return "", fmt.Errorf("packaging error: unsupported platform %s/%s", goos, goarch)
	}

	var archToken string
	switch goarch {
	case "amd64":
		archToken = "x86_64"
	case "arm64":
		archToken = "aarch64"
	default:
		return "", fmt.Errorf("packaging error: unsupported platform %s/%s", goos, goarch)
	}

	name := fmt.Sprintf("generator-%s-%s", osToken, archToken)
	if goos == "windows" {
		name += ".exe"
	}
	return name, nil
}
