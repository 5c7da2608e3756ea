// Package config loads inkline settings from a TOML file with
// INKLINE_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/inkline/internal/render/core"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "INKLINE_"

// Config is the full settings tree.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Theme   ThemeConfig   `toml:"theme"`
	Logging LoggingConfig `toml:"logging"`
}

// EditorConfig holds text handling settings.
type EditorConfig struct {
	// TabWidth is the tab stop interval in columns.
	TabWidth int `toml:"tab_width"`
}

// ThemeConfig names colors as hex strings ("#rrggbb").
type ThemeConfig struct {
	Foreground  string `toml:"foreground"`
	Background  string `toml:"background"`
	Highlight   string `toml:"highlight"`
	Invalid     string `toml:"invalid"`
	VirtualText string `toml:"virtual_text"`
}

// LoggingConfig controls the session logger.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			TabWidth: 4,
		},
		Theme: ThemeConfig{
			Highlight:   "#3a5fcd",
			Invalid:     "#cd3a3a",
			VirtualText: "#808080",
		},
		Logging: LoggingConfig{
			Level: "error",
		},
	}
}

// Load reads settings from path, layering file values over defaults
// and environment overrides over both. A missing file is not an
// error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides settings from INKLINE_* variables.
func (c *Config) applyEnv() {
	if v, ok := lookupInt("TAB_WIDTH"); ok {
		c.Editor.TabWidth = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_FILE"); ok {
		c.Logging.File = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "THEME_FOREGROUND"); ok {
		c.Theme.Foreground = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "THEME_BACKGROUND"); ok {
		c.Theme.Background = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "THEME_HIGHLIGHT"); ok {
		c.Theme.Highlight = v
	}
}

func lookupInt(name string) (int, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Validate checks ranges and color syntax.
func (c *Config) Validate() error {
	if c.Editor.TabWidth < 1 {
		return fmt.Errorf("editor.tab_width must be at least 1, got %d", c.Editor.TabWidth)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	if _, err := c.Theme.Styles(); err != nil {
		return err
	}
	return nil
}

// Theme is the resolved style set used by the presentation layer.
type Theme struct {
	Base        core.Style
	Highlight   core.Style
	Invalid     core.Style
	VirtualText core.Style
}

// Styles resolves the hex color names into concrete styles. Empty
// entries keep the terminal defaults.
func (tc ThemeConfig) Styles() (Theme, error) {
	base := core.DefaultStyle()
	var err error
	if base.Foreground, err = themeColor(tc.Foreground, "theme.foreground"); err != nil {
		return Theme{}, err
	}
	if base.Background, err = themeColor(tc.Background, "theme.background"); err != nil {
		return Theme{}, err
	}

	theme := Theme{
		Base:        base,
		Highlight:   base,
		Invalid:     base.Reversed(),
		VirtualText: base.Dim(),
	}
	if tc.Highlight != "" {
		c, err := themeColor(tc.Highlight, "theme.highlight")
		if err != nil {
			return Theme{}, err
		}
		theme.Highlight = base.WithBackground(c)
	}
	if tc.Invalid != "" {
		c, err := themeColor(tc.Invalid, "theme.invalid")
		if err != nil {
			return Theme{}, err
		}
		theme.Invalid = base.WithForeground(c).Reversed()
	}
	if tc.VirtualText != "" {
		c, err := themeColor(tc.VirtualText, "theme.virtual_text")
		if err != nil {
			return Theme{}, err
		}
		theme.VirtualText = base.WithForeground(c)
	}
	return theme, nil
}

func themeColor(hex, name string) (core.Color, error) {
	if hex == "" {
		return core.ColorDefault, nil
	}
	c, err := core.ColorFromHex(hex)
	if err != nil {
		return core.Color{}, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}
