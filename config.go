package setup

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds everything arch-setup needs for a run: where state lives,
// what to install, which services to enable, and which tweaks to apply.
type Config struct {
	// StateDir is the per-user directory for cross-invocation state.
	StateDir string `yaml:"state_dir"`

	// MarkerPath is the progress marker file. Defaults to
	// <StateDir>/marker. The file holds exactly one line: the name of
	// the last completed step. Absence means no progress yet.
	MarkerPath string `yaml:"marker_path"`

	// HistoryDB, when non-empty, enables the SQLite audit store at the
	// given path. Every step attempt is recorded there in addition to
	// the marker.
	HistoryDB string `yaml:"history_db"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// NonInteractive skips every prompt-driven step (Wi-Fi, Bluetooth,
	// reboot confirmation).
	NonInteractive bool `yaml:"non_interactive"`

	Packages PackagesConfig `yaml:"packages"`
	Services []string       `yaml:"services"`
	Tweaks   []FileEdit     `yaml:"tweaks"`
	Themes   []Download     `yaml:"themes"`
	Network  NetworkConfig  `yaml:"network"`
}

// PackagesConfig lists the package groups installed during a run.
type PackagesConfig struct {
	// Base packages are required; their installation is a fatal step.
	Base []string `yaml:"base"`

	// Desktop packages are nice-to-have; their installation is advisory.
	Desktop []string `yaml:"desktop"`

	// AurHelper is the AUR helper to bootstrap (empty disables the step).
	AurHelper string `yaml:"aur_helper"`
}

// FileEdit describes a guarded in-place edit of a system file: Match is
// a regular expression replaced by Replace on every matching line.
type FileEdit struct {
	Path    string `yaml:"path"`
	Match   string `yaml:"match"`
	Replace string `yaml:"replace"`
}

// Download describes a theme or dotfile archive fetched during setup.
type Download struct {
	URL  string `yaml:"url"`
	Dest string `yaml:"dest"`
}

// NetworkConfig toggles the interactive hardware setup steps.
type NetworkConfig struct {
	Wifi      bool `yaml:"wifi"`
	Bluetooth bool `yaml:"bluetooth"`
}

// DefaultConfig returns a Config with sensible defaults. State lives
// under the XDG state directory (~/.local/state/arch-setup).
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		StateDir: filepath.Join(home, ".local", "state", "arch-setup"),
		LogLevel: "info",
		Network: NetworkConfig{
			Wifi:      true,
			Bluetooth: true,
		},
	}
}

// Marker returns the marker file path, deriving it from StateDir when
// MarkerPath is unset.
func (c Config) Marker() string {
	if c.MarkerPath != "" {
		return c.MarkerPath
	}
	return filepath.Join(c.StateDir, "marker")
}

// LoadConfig reads a YAML config file layered over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("setup: open config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("setup: decode config %s: %w", path, err)
	}
	return cfg, nil
}
