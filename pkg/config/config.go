// Package config provides TOML-based configuration for trend-pulse.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	General GeneralConfig `toml:"general"`
	Window  WindowConfig  `toml:"window"`
	Track   TrackConfig   `toml:"track"`
	Source  SourceConfig  `toml:"source"`
	Display DisplayConfig `toml:"display"`
}

// GeneralConfig holds process-wide settings.
type GeneralConfig struct {
	// TickInterval is the poll-aggregate-emit cadence.
	TickInterval Duration `toml:"tick_interval"`
	LogLevel     string   `toml:"log_level"`
	LogFile      string   `toml:"log_file"`
}

// WindowConfig bounds the sliding-window store.
type WindowConfig struct {
	// Capacity is W: the number of tick timestamps and per-key samples
	// retained.
	Capacity int `toml:"capacity"`
	// TopN is how many keys are tracked each tick.
	TopN int `toml:"top_n"`
}

// TrackConfig selects what is counted.
type TrackConfig struct {
	// Keywords is the watch-list counted by raw substring match.
	Keywords []string `toml:"keywords"`
	// ExtraStopwords extends the built-in English stopword list.
	ExtraStopwords []string `toml:"extra_stopwords"`
}

// SourceConfig locates the polled record source.
type SourceConfig struct {
	DBPath string `toml:"db_path"`
	Table  string `toml:"table"`
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	Palette string `toml:"palette"`
}

// Validate checks invariants that loading alone cannot enforce.
func (c *Config) Validate() error {
	if c.General.TickInterval.Duration <= 0 {
		return fmt.Errorf("general.tick_interval must be positive, got %s", c.General.TickInterval.Duration)
	}
	if c.Window.Capacity <= 0 {
		return fmt.Errorf("window.capacity must be positive, got %d", c.Window.Capacity)
	}
	if c.Window.TopN <= 0 {
		return fmt.Errorf("window.top_n must be positive, got %d", c.Window.TopN)
	}
	if c.Window.TopN > c.Window.Capacity {
		return fmt.Errorf("window.top_n (%d) cannot exceed window.capacity (%d)", c.Window.TopN, c.Window.Capacity)
	}
	switch c.General.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("general.log_level %q not one of debug, info, warn, error", c.General.LogLevel)
	}
	return nil
}

// Duration wraps time.Duration with TOML-friendly string parsing,
// accepting standard Go duration strings ("2s", "500ms", "1m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative duration %q not allowed", s)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML serialization.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
