package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Deployment.Mode != "development" {
		t.Fatalf("expected development mode default, got %q", cfg.Deployment.Mode)
	}
	if cfg.Generator.TimeoutSeconds != 120 {
		t.Fatalf("expected 120s timeout default, got %d", cfg.Generator.TimeoutSeconds)
	}
	if cfg.Generator.SweepWorkers != 4 {
		t.Fatalf("expected 4 sweep workers default, got %d", cfg.Generator.SweepWorkers)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected info log level default, got %q", cfg.Log.Level)
	}
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "deployment": {"mode": "packaged", "resource_root": "/opt/seedforge"},
  "generator": {"timeout_seconds": 30}
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Deployment.Mode != "packaged" {
		t.Fatalf("expected packaged mode, got %q", cfg.Deployment.Mode)
	}
	if cfg.Deployment.ResourceRoot != "/opt/seedforge" {
		t.Fatalf("unexpected resource root %q", cfg.Deployment.ResourceRoot)
	}
	if cfg.GeneratorTimeout() != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %v", cfg.GeneratorTimeout())
	}
	// Unset fields keep their defaults.
	if cfg.Generator.SweepWorkers != 4 {
		t.Fatalf("expected default sweep workers, got %d", cfg.Generator.SweepWorkers)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"deployment":{"mode":"development"}}`), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SEEDFORGE_DEPLOYMENT_MODE", "packaged")
	t.Setenv("SEEDFORGE_SWEEP_WORKERS", "8")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Deployment.Mode != "packaged" {
		t.Fatalf("expected env override to win, got %q", cfg.Deployment.Mode)
	}
	if cfg.Generator.SweepWorkers != 8 {
		t.Fatalf("expected 8 sweep workers from env, got %d", cfg.Generator.SweepWorkers)
	}
}

func TestLoadConfigClampsNonPositiveValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"generator":{"timeout_seconds":-5,"sweep_workers":0}}`), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Generator.TimeoutSeconds != 120 {
		t.Fatalf("expected timeout clamped to 120, got %d", cfg.Generator.TimeoutSeconds)
	}
	if cfg.Generator.SweepWorkers != 1 {
		t.Fatalf("expected workers clamped to 1, got %d", cfg.Generator.SweepWorkers)
	}
}

func TestLoadConfigRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected parse error for malformed config")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.Deployment.WorkspaceRoot = "/srv/seedforge"

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig returned error: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if loaded.Deployment.WorkspaceRoot != "/srv/seedforge" {
		t.Fatalf("round trip lost workspace root: %q", loaded.Deployment.WorkspaceRoot)
	}
}

func TestWorkspaceAndRegistryPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Deployment.WorkspaceRoot = "/srv/seedforge"
	if cfg.WorkspacePath() != "/srv/seedforge" {
		t.Fatalf("unexpected workspace path %q", cfg.WorkspacePath())
	}
	if cfg.RegistryRoot() != filepath.Join("/srv/seedforge", "registry") {
		t.Fatalf("unexpected registry root %q", cfg.RegistryRoot())
	}

	cfg.Registry.Root = "/var/lib/seedforge/registry"
	if cfg.RegistryRoot() != "/var/lib/seedforge/registry" {
		t.Fatalf("explicit registry root must win, got %q", cfg.RegistryRoot())
	}
}
