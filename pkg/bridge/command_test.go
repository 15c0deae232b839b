package bridge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveDevelopmentUsesNodeBridgeScript(t *testing.T) {
	workspace := t.TempDir()
	scriptPath := filepath.Join(workspace, "scripts", "generator-bridge.mjs")
	if err := os.MkdirAll(filepath.Dir(scriptPath), 0755); err != nil {
		t.Fatalf("mkdir scripts: %v", err)
	}
	if err := os.WriteFile(scriptPath, []byte("// bridge\n"), 0644); err != nil {
		t.Fatalf("write bridge script: %v", err)
	}

	resolver := NewCommandResolver(ModeDevelopment, workspace, "")
	cmd, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if cmd.Executable != "node" {
		t.Fatalf("expected node executable, got %q", cmd.Executable)
	}
	if len(cmd.BaseArgs) != 1 || cmd.BaseArgs[0] != scriptPath {
		t.Fatalf("expected base args [%s], got %v", scriptPath, cmd.BaseArgs)
	}
	if cmd.WorkingDir != workspace {
		t.Fatalf("expected working dir %q, got %q", workspace, cmd.WorkingDir)
	}
}

func TestResolveDevelopmentMissingScript(t *testing.T) {
	resolver := NewCommandResolver(ModeDevelopment, t.TempDir(), "")
	_, err := resolver.Resolve()
	if err == nil || !strings.Contains(err.Error(), "generator bridge script not found") {
		t.Fatalf("expected missing script error, got %v", err)
	}
}

func TestResolvePackagedFindsBinaryInBundleRoot(t *testing.T) {
	resources := t.TempDir()
	binary := filepath.Join(resources, "generator-linux-x86_64")
	if err := os.WriteFile(binary, []byte{}, 0755); err != nil {
		t.Fatalf("write binary: %v", err)
	}

	resolver := NewCommandResolverWithOptions(ModePackaged, "", resources, CommandResolverOptions{
		GOOS:   "linux",
		GOARCH: "amd64",
	})
	cmd, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if cmd.Executable != binary {
		t.Fatalf("expected %q, got %q", binary, cmd.Executable)
	}
	if len(cmd.BaseArgs) != 0 {
		t.Fatalf("expected no base args for packaged binary, got %v", cmd.BaseArgs)
	}
}

func TestResolvePackagedFallsBackToBinariesDir(t *testing.T) {
	resources := t.TempDir()
	binary := filepath.Join(resources, "binaries", "generator-darwin-aarch64")
	if err := os.MkdirAll(filepath.Dir(binary), 0755); err != nil {
		t.Fatalf("mkdir binaries: %v", err)
	}
	if err := os.WriteFile(binary, []byte{}, 0755); err != nil {
		t.Fatalf("write binary: %v", err)
	}

	resolver := NewCommandResolverWithOptions(ModePackaged, "", resources, CommandResolverOptions{
		GOOS:   "darwin",
		GOARCH: "arm64",
	})
	cmd, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if cmd.Executable != binary {
		t.Fatalf("expected %q, got %q", binary, cmd.Executable)
	}
}

func TestResolvePackagedMissingBinary(t *testing.T) {
	resolver := NewCommandResolverWithOptions(ModePackaged, "", t.TempDir(), CommandResolverOptions{
		GOOS:   "linux",
		GOARCH: "amd64",
	})
	_, err := resolver.Resolve()
	if err == nil || !strings.Contains(err.Error(), "packaging error") {
		t.Fatalf("expected packaging error, got %v", err)
	}
}

func TestPackagedBinaryNames(t *testing.T) {
	cases := []struct {
		goos, goarch string
		want         string
	}{
		{"linux", "amd64", "generator-linux-x86_64"},
		{"linux", "arm64", "generator-linux-aarch64"},
		{"darwin", "arm64", "generator-darwin-aarch64"},
		{"windows", "amd64", "generator-windows-x86_64.exe"},
	}
	for _, tc := range cases {
		got, err := packagedBinaryName(tc.goos, tc.goarch)
		if err != nil {
			t.Fatalf("%s/%s: unexpected error %v", tc.goos, tc.goarch, err)
		}
		if got != tc.want {
			t.Fatalf("%s/%s: expected %q, got %q", tc.goos, tc.goarch, tc.want, got)
		}
	}

	if _, err := packagedBinaryName("plan9", "amd64"); err == nil {
		t.Fatalf("expected error for unsupported platform")
	}
	if _, err := packagedBinaryName("linux", "riscv64"); err == nil {
		t.Fatalf("expected error for unsupported arch")
	}
}

func TestParseDeploymentMode(t *testing.T) {
	if _, err := ParseDeploymentMode("development"); err != nil {
		t.Fatalf("development should parse: %v", err)
	}
	if _, err := ParseDeploymentMode("packaged"); err != nil {
		t.Fatalf("packaged should parse: %v", err)
	}
	if _, err := ParseDeploymentMode("staging"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
