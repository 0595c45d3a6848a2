package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Fill.Column != DefaultFillColumn {
		t.Errorf("fill.column = %d, want %d", cfg.Fill.Column, DefaultFillColumn)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fill column", func(c *Config) { c.Fill.Column = 0 }},
		{"negative fill column", func(c *Config) { c.Fill.Column = -10 }},
		{"zero tab width", func(c *Config) { c.Editor.TabWidth = 0 }},
		{"huge tab width", func(c *Config) { c.Editor.TabWidth = 32 }},
		{"bad line ending", func(c *Config) { c.Editor.LineEnding = "cr" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if !errors.Is(cfg.Validate(), ErrValidationFailed) {
				t.Error("expected ErrValidationFailed")
			}
		})
	}
}

func TestSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("fill.column", 100); err != nil {
		t.Fatal(err)
	}
	if cfg.Fill.Column != 100 {
		t.Errorf("fill.column = %d, want 100", cfg.Fill.Column)
	}

	// String values are coerced for numeric settings (env loader path).
	if err := cfg.Set("editor.tab_width", "4"); err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.TabWidth != 4 {
		t.Errorf("editor.tab_width = %d, want 4", cfg.Editor.TabWidth)
	}

	if err := cfg.Set("ui.theme.foreground", "#ffffff"); err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Theme.Foreground != "#ffffff" {
		t.Errorf("foreground = %q", cfg.UI.Theme.Foreground)
	}

	if !errors.Is(cfg.Set("no.such.setting", 1), ErrSettingNotFound) {
		t.Error("expected ErrSettingNotFound")
	}
	if !errors.Is(cfg.Set("fill.column", "not a number"), ErrTypeMismatch) {
		t.Error("expected ErrTypeMismatch")
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeTemp(t, "config.toml", `
[fill]
column = 100

[ui.theme]
foreground = "#abcdef"
`)

	cfg := Default()
	if err := LoadFile(&cfg, path); err != nil {
		t.Fatal(err)
	}
	if cfg.Fill.Column != 100 {
		t.Errorf("fill.column = %d, want 100", cfg.Fill.Column)
	}
	if cfg.UI.Theme.Foreground != "#abcdef" {
		t.Errorf("foreground = %q", cfg.UI.Theme.Foreground)
	}
	// Untouched settings keep their defaults.
	if cfg.Editor.TabWidth != DefaultTabWidth {
		t.Errorf("tab_width = %d, want default", cfg.Editor.TabWidth)
	}
}

func TestLoadTOMLParseError(t *testing.T) {
	path := writeTemp(t, "config.toml", "[fill\ncolumn = ")

	cfg := Default()
	err := LoadFile(&cfg, path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "config.yaml", `
fill:
  column: 90
editor:
  line_ending: lf
`)

	cfg := Default()
	if err := LoadFile(&cfg, path); err != nil {
		t.Fatal(err)
	}
	if cfg.Fill.Column != 90 {
		t.Errorf("fill.column = %d, want 90", cfg.Fill.Column)
	}
	if cfg.Editor.LineEnding != "lf" {
		t.Errorf("line_ending = %q, want lf", cfg.Editor.LineEnding)
	}
}

func TestLoadScript(t *testing.T) {
	path := writeTemp(t, "config.lua", `
orgfill.set("fill.column", 80)
orgfill.set("ui.theme.background", "#000000")
if orgfill.get("fill.column") ~= 80 then
  error("get should see the new value")
end
`)

	cfg := Default()
	if err := LoadFile(&cfg, path); err != nil {
		t.Fatal(err)
	}
	if cfg.Fill.Column != 80 {
		t.Errorf("fill.column = %d, want 80", cfg.Fill.Column)
	}
	if cfg.UI.Theme.Background != "#000000" {
		t.Errorf("background = %q", cfg.UI.Theme.Background)
	}
}

func TestLoadScriptBadSetting(t *testing.T) {
	path := writeTemp(t, "config.lua", `orgfill.set("no.such", 1)`)

	cfg := Default()
	if err := LoadFile(&cfg, path); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("expected ErrSettingNotFound, got %v", err)
	}
}

func TestLoadScriptSandbox(t *testing.T) {
	// os and io are not opened; touching them must fail the script.
	path := writeTemp(t, "config.lua", `os.exit(1)`)

	cfg := Default()
	if err := LoadFile(&cfg, path); err == nil {
		t.Error("expected an error from sandboxed script")
	}
}

func TestLoadFileUnsupportedFormat(t *testing.T) {
	cfg := Default()
	if err := LoadFile(&cfg, "config.ini"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ORGFILL_FILL_COLUMN", "120")
	t.Setenv("ORGFILL_THEME_FG", "#123456")

	cfg := Default()
	if err := loadEnv(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Fill.Column != 120 {
		t.Errorf("fill.column = %d, want 120", cfg.Fill.Column)
	}
	if cfg.UI.Theme.Foreground != "#123456" {
		t.Errorf("foreground = %q", cfg.UI.Theme.Foreground)
	}
}

func TestLoadEnvBadValue(t *testing.T) {
	t.Setenv("ORGFILL_FILL_COLUMN", "wide")

	cfg := Default()
	if err := loadEnv(&cfg); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := writeTemp(t, "config.toml", "[fill]\ncolumn = 90\n")
	t.Setenv("ORGFILL_FILL_COLUMN", "110")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	// Environment wins over the file.
	if cfg.Fill.Column != 110 {
		t.Errorf("fill.column = %d, want 110", cfg.Fill.Column)
	}
}

func TestLoadRejectsInvalidResult(t *testing.T) {
	path := writeTemp(t, "config.toml", "[fill]\ncolumn = -1\n")

	if _, err := Load(path); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}
}
