package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "skillmap.yml"

// EnvPrefix marks environment overrides. Nested keys use a double
// underscore: SKILLMAP_VIEW__WIDTH -> view.width.
const EnvPrefix = "SKILLMAP_"

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Source:   "skills.json",
		LogLevel: "info",
		View: ViewConfig{
			Title:            "Skill Map",
			Width:            1280,
			Height:           800,
			Resizable:        true,
			MinScale:         0.2,
			MaxScale:         2,
			InitialScale:     0.75,
			WheelSensitivity: 0.0015,
			KeyStep:          0.1,
			LoadTimeout:      "10s",
			ScreenshotDir:    "screenshots",
		},
		Layout: LayoutConfig{
			CellSize:      120,
			CellMargin:    8,
			IslandPadding: 32,
			TitleHeight:   72,
			IslandGap:     64,
			IslandsPerRow: 3,
		},
		Server: ServerConfig{
			Addr: ":8080",
			Data: "skills.json",
		},
	}
}

// envKey maps SKILLMAP_VIEW__SHOW_FPS to view.show_fps.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SKILLMAP_*). A missing file is not an
// error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	v := c.View
	if v.Width < 0 || v.Height < 0 {
		return fmt.Errorf("view.width and view.height must be non-negative")
	}
	if v.MinScale <= 0 {
		return fmt.Errorf("view.min_scale must be positive")
	}
	if v.MaxScale < v.MinScale {
		return fmt.Errorf("view.max_scale (%g) must not be below view.min_scale (%g)", v.MaxScale, v.MinScale)
	}
	if v.InitialScale < v.MinScale || v.InitialScale > v.MaxScale {
		return fmt.Errorf("view.initial_scale %g is outside [%g, %g]", v.InitialScale, v.MinScale, v.MaxScale)
	}
	if v.WheelSensitivity <= 0 {
		return fmt.Errorf("view.wheel_sensitivity must be positive")
	}
	if v.KeyStep <= 0 {
		return fmt.Errorf("view.key_step must be positive")
	}
	if _, err := c.LoadTimeout(); err != nil {
		return err
	}

	l := c.Layout
	if l.CellSize <= 0 {
		return fmt.Errorf("layout.cell_size must be positive")
	}
	if l.CellMargin < 0 || l.IslandPadding < 0 || l.TitleHeight < 0 || l.IslandGap < 0 {
		return fmt.Errorf("layout margins and gaps must be non-negative")
	}
	if l.IslandsPerRow <= 0 {
		return fmt.Errorf("layout.islands_per_row must be positive")
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// LoadTimeout parses view.load_timeout. An empty value means no timeout.
func (c *Config) LoadTimeout() (time.Duration, error) {
	if c.View.LoadTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.View.LoadTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid view.load_timeout %q: %w", c.View.LoadTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("view.load_timeout must be non-negative")
	}
	return d, nil
}
