package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ClientConfig is the GUI's config_gui.toml, recognized-keys set per spec
// §6. Grounded on the teacher's typed-struct + Validate() shape
// (internal/config/cfg.go's Cfg/cnt/upnp), adapted from JSON to TOML tags
// since that's the format spec.md §6 names for the GUI.
type ClientConfig struct {
	Font                  string  `toml:"font"`
	LineHeight            float64 `toml:"line_height"`
	ScrollPixelsMultiplier float64 `toml:"scroll_pixels_multiplier"`
	ScrollLinesMultiplier  float64 `toml:"scroll_lines_multiplier"`
	ScrollPagesMultiplier  float64 `toml:"scroll_pages_multiplier"`

	Text ClientText `toml:"text"`
}

type ClientText struct {
	StatusBar string `toml:"status_bar"`
	IdleTop   string `toml:"idle_top"`
	IdleSide1 string `toml:"idle_side1"`
	IdleSide2 string `toml:"idle_side2"`
}

// DefaultClientConfig is written to disk the first time the GUI is run
// without a config file (spec §6: "exit 25 if missing (writes a default)").
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		LineHeight:             1.2,
		ScrollPixelsMultiplier: 1.0,
		ScrollLinesMultiplier:  1.0,
		ScrollPagesMultiplier:  1.0,
		Text: ClientText{
			StatusBar: "{title} - {artist}",
			IdleTop:   "musicdb",
			IdleSide1: "no song playing",
			IdleSide2: "-",
		},
	}
}

// LoadClientConfig reads and parses path. If the file does not exist, it
// writes DefaultClientConfig() to path and returns ErrConfigMissing so the
// caller can exit(25); any other read/parse/validation failure is returned
// plain so the caller can exit(30) (spec §6).
func LoadClientConfig(path string) (ClientConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		def := DefaultClientConfig()
		out, mErr := toml.Marshal(def)
		if mErr != nil {
			return ClientConfig{}, mErr
		}
		if wErr := os.WriteFile(path, out, 0o644); wErr != nil {
			return ClientConfig{}, wErr
		}
		return ClientConfig{}, ErrConfigMissing
	}
	if err != nil {
		return ClientConfig{}, err
	}

	var cfg ClientConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return ClientConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

// ErrConfigMissing signals the "file didn't exist, wrote a default" case.
var ErrConfigMissing = fmt.Errorf("config file did not exist, a default was written")

// Validate checks the required keys are present (spec §6: "font ... required",
// "[text] status_bar|idle_top|idle_side1|idle_side2 ... required").
func (c *ClientConfig) Validate() error {
	if c.Font == "" {
		return fmt.Errorf("config: 'font' is required")
	}
	if c.Text.StatusBar == "" {
		return fmt.Errorf("config: 'text.status_bar' is required")
	}
	if c.Text.IdleTop == "" {
		return fmt.Errorf("config: 'text.idle_top' is required")
	}
	if c.Text.IdleSide1 == "" {
		return fmt.Errorf("config: 'text.idle_side1' is required")
	}
	if c.Text.IdleSide2 == "" {
		return fmt.Errorf("config: 'text.idle_side2' is required")
	}
	return nil
}
