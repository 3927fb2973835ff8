package config

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultKeywords is the built-in watch-list of tracked hashtags.
var DefaultKeywords = []string{
	"#climatechange",
	"#climatestrike",
	"#globalwarming",
	"#parisagreement",
	"#carbonprice",
	"#savetheplanet",
}

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/trend-pulse/config.toml
//  2. ~/.config/trend-pulse/config.toml
//
// If no file exists, returns DefaultConfig() with env overrides applied.
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path. A missing
// file falls back to defaults rather than failing.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads configuration from an io.Reader.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	stateDir := filepath.Join(xdgStateHome(home), "trend-pulse")

	return &Config{
		General: GeneralConfig{
			TickInterval: Duration{2 * time.Second},
			LogLevel:     "info",
			LogFile:      filepath.Join(stateDir, "trend-pulse.log"),
		},
		Window: WindowConfig{
			Capacity: 30,
			TopN:     5,
		},
		Track: TrackConfig{
			Keywords: append([]string(nil), DefaultKeywords...),
		},
		Source: SourceConfig{
			DBPath: "posts.db",
			Table:  "post",
		},
		Display: DisplayConfig{
			Palette: "pulse",
		},
	}
}

// applyEnvOverrides checks environment variables and overrides config
// values. PULSE_GRAPH_INTERVAL is the tick interval in milliseconds,
// kept for parity with the streaming server's GRAPH_INTERVAL knob.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PULSE_GRAPH_INTERVAL"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.General.TickInterval = Duration{time.Duration(ms) * time.Millisecond}
		}
	}
	if v := os.Getenv("PULSE_DB"); v != "" {
		cfg.Source.DBPath = v
	}
	if v := os.Getenv("PULSE_PALETTE"); v != "" {
		cfg.Display.Palette = v
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "trend-pulse", "config.toml"))

	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "trend-pulse", "config.toml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgStateHome returns XDG_STATE_HOME or ~/.local/state as fallback.
func xdgStateHome(home string) string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "state")
}
