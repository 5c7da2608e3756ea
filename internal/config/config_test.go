package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/inkline/internal/render/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inkline.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	want := Default()
	if cfg.Editor.TabWidth != want.Editor.TabWidth {
		t.Errorf("tab width = %d, want default %d", cfg.Editor.TabWidth, want.Editor.TabWidth)
	}
	if cfg.Logging.Level != want.Logging.Level {
		t.Errorf("log level = %q, want default %q", cfg.Logging.Level, want.Logging.Level)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[editor]
tab_width = 8

[theme]
highlight = "#102030"

[logging]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Errorf("tab width = %d, want 8", cfg.Editor.TabWidth)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Theme.Invalid != Default().Theme.Invalid {
		t.Errorf("unset theme entry should keep its default, got %q", cfg.Theme.Invalid)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "[editor\ntab_width = 8")
	if _, err := Load(path); err == nil {
		t.Fatal("malformed TOML should error")
	} else if !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("err = %v, want parse error mentioning the file", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = 8\n")
	t.Setenv("INKLINE_TAB_WIDTH", "2")
	t.Setenv("INKLINE_LOG_LEVEL", "info")
	t.Setenv("INKLINE_THEME_HIGHLIGHT", "#ff0000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.TabWidth != 2 {
		t.Errorf("tab width = %d, want env override 2", cfg.Editor.TabWidth)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q, want env override info", cfg.Logging.Level)
	}
	if cfg.Theme.Highlight != "#ff0000" {
		t.Errorf("highlight = %q, want env override #ff0000", cfg.Theme.Highlight)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"zero tab width", func(c *Config) { c.Editor.TabWidth = 0 }, true},
		{"negative tab width", func(c *Config) { c.Editor.TabWidth = -2 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad theme color", func(c *Config) { c.Theme.Highlight = "blue-ish" }, true},
		{"empty log level accepted", func(c *Config) { c.Logging.Level = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestThemeStyles(t *testing.T) {
	theme, err := Default().Theme.Styles()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := core.ColorFromHex("#3a5fcd")
	if !theme.Highlight.Background.Equals(want) {
		t.Errorf("highlight background = %v, want %v", theme.Highlight.Background, want)
	}
	if !theme.Invalid.Attributes.Has(core.AttrReverse) {
		t.Error("invalid style should be reversed")
	}
	if !theme.Base.Foreground.IsDefault() {
		t.Error("unset foreground should stay terminal default")
	}
}

func TestThemeEmptyKeepsDefaults(t *testing.T) {
	theme, err := ThemeConfig{}.Styles()
	if err != nil {
		t.Fatal(err)
	}
	if !theme.VirtualText.Attributes.Has(core.AttrDim) {
		t.Error("virtual text with no color should fall back to dim")
	}
	if !theme.Highlight.Equals(theme.Base) {
		t.Error("highlight with no color should equal the base style")
	}
}
