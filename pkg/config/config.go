// Package config loads and persists the SeedForge configuration file.
// The file is plain JSON under ~/.seedforge; environment variables
// override individual fields after the file is read, which keeps
// packaged desktop builds configurable without editing files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

type DeploymentConfig struct {
	// Mode selects how the generator is invoked: "development" runs the
	// bridge script through node, "packaged" runs a bundled binary.
	Mode          string `json:"mode" env:"SEEDFORGE_DEPLOYMENT_MODE"`
	WorkspaceRoot string `json:"workspace_root" env:"SEEDFORGE_WORKSPACE_ROOT"`
	ResourceRoot  string `json:"resource_root" env:"SEEDFORGE_RESOURCE_ROOT"`
}

type GeneratorConfig struct {
	TimeoutSeconds int `json:"timeout_seconds" env:"SEEDFORGE_GENERATOR_TIMEOUT_SECONDS"`
	SweepWorkers   int `json:"sweep_workers" env:"SEEDFORGE_SWEEP_WORKERS"`
}

type RegistryConfig struct {
	Root string `json:"root" env:"SEEDFORGE_REGISTRY_ROOT"`
}

type LogConfig struct {
	Level string `json:"level" env:"SEEDFORGE_LOG_LEVEL"`
}

type Config struct {
	Deployment DeploymentConfig `json:"deployment"`
	Generator  GeneratorConfig  `json:"generator"`
	Registry   RegistryConfig   `json:"registry"`
	Log        LogConfig        `json:"log"`
}

func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Deployment.Mode = "development"
	cfg.Generator.TimeoutSeconds = 120
	cfg.Generator.SweepWorkers = 4
	cfg.Log.Level = "info"
	return cfg
}

// LoadConfig reads the config file, applies defaults for missing fields,
// then applies environment overrides. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	if cfg.Generator.TimeoutSeconds <= 0 {
		cfg.Generator.TimeoutSeconds = 120
	}
	if cfg.Generator.SweepWorkers <= 0 {
		cfg.Generator.SweepWorkers = 1
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// WorkspacePath returns the configured workspace root, falling back to
// ~/seedforge when unset.
func (c *Config) WorkspacePath() string {
	if c.Deployment.WorkspaceRoot != "" {
		return c.Deployment.WorkspaceRoot
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "seedforge"
	}
	return filepath.Join(home, "seedforge")
}

// RegistryRoot returns the registry directory, defaulting to
// <workspace>/registry.
func (c *Config) RegistryRoot() string {
	if c.Registry.Root != "" {
		return c.Registry.Root
	}
	return filepath.Join(c.WorkspacePath(), "registry")
}

func (c *Config) GeneratorTimeout() time.Duration {
	return time.Duration(c.Generator.TimeoutSeconds) * time.Second
}
