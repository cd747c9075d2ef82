package setup_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	setup "github.com/aorozco-g/arch-setup"
)

func TestDefaultConfig(t *testing.T) {
	cfg := setup.DefaultConfig()

	if cfg.StateDir == "" {
		t.Error("StateDir should default to the XDG state dir")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if !cfg.Network.Wifi || !cfg.Network.Bluetooth {
		t.Error("network steps should default on")
	}
	if cfg.NonInteractive {
		t.Error("NonInteractive should default off")
	}
}

func TestMarkerDerivedFromStateDir(t *testing.T) {
	cfg := setup.Config{StateDir: "/var/lib/arch-setup"}
	if got := cfg.Marker(); got != filepath.Join("/var/lib/arch-setup", "marker") {
		t.Errorf("Marker() = %q, want derived from StateDir", got)
	}

	cfg.MarkerPath = "/tmp/custom-marker"
	if got := cfg.Marker(); got != "/tmp/custom-marker" {
		t.Errorf("Marker() = %q, want explicit MarkerPath", got)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.yaml")
	content := `
state_dir: /tmp/setup-state
log_level: debug
non_interactive: true
packages:
  base: [base-devel, git]
  desktop: [firefox]
  aur_helper: yay
services: [NetworkManager]
tweaks:
  - path: /etc/pacman.conf
    match: "#Color"
    replace: Color
themes:
  - url: https://example.com/theme.tar.gz
    dest: /tmp/theme.tar.gz
network:
  wifi: false
  bluetooth: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := setup.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.StateDir != "/tmp/setup-state" {
		t.Errorf("StateDir = %q", cfg.StateDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if !cfg.NonInteractive {
		t.Error("NonInteractive not loaded")
	}
	if len(cfg.Packages.Base) != 2 || cfg.Packages.Base[0] != "base-devel" {
		t.Errorf("Packages.Base = %v", cfg.Packages.Base)
	}
	if cfg.Packages.AurHelper != "yay" {
		t.Errorf("AurHelper = %q", cfg.Packages.AurHelper)
	}
	if len(cfg.Tweaks) != 1 || cfg.Tweaks[0].Match != "#Color" {
		t.Errorf("Tweaks = %v", cfg.Tweaks)
	}
	if len(cfg.Themes) != 1 || cfg.Themes[0].Dest != "/tmp/theme.tar.gz" {
		t.Errorf("Themes = %v", cfg.Themes)
	}
	if cfg.Network.Wifi {
		t.Error("Network.Wifi should be false")
	}
	if !cfg.Network.Bluetooth {
		t.Error("Network.Bluetooth should stay true")
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.yaml")
	if err := os.WriteFile(path, []byte("no_such_field: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := setup.LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if !strings.Contains(err.Error(), "decode config") {
		t.Errorf("err = %v, want decode error", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := setup.LoadConfig("/nonexistent/setup.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
