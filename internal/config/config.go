package config

import (
	"fmt"
	"strconv"
)

// Default values for configuration settings.
const (
	DefaultFillColumn = 70
	DefaultTabWidth   = 8
)

// Config holds all orgfill settings, grouped by section.
type Config struct {
	Fill   FillConfig   `toml:"fill" yaml:"fill"`
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	UI     UIConfig     `toml:"ui" yaml:"ui"`
}

// FillConfig controls reflow behavior.
type FillConfig struct {
	// Column is the target width for reflowed lines.
	Column int `toml:"column" yaml:"column"`
}

// EditorConfig controls buffer behavior.
type EditorConfig struct {
	// TabWidth is the display width of a tab character.
	TabWidth int `toml:"tab_width" yaml:"tab_width"`

	// LineEnding selects the line ending written on save:
	// "auto" (keep what the file had), "lf", or "crlf".
	LineEnding string `toml:"line_ending" yaml:"line_ending"`
}

// UIConfig controls the terminal interface.
type UIConfig struct {
	Theme ThemeConfig `toml:"theme" yaml:"theme"`
}

// ThemeConfig holds interface colors as hex strings ("#rrggbb").
type ThemeConfig struct {
	Foreground string `toml:"foreground" yaml:"foreground"`
	Background string `toml:"background" yaml:"background"`
	StatusFg   string `toml:"status_fg" yaml:"status_fg"`
	StatusBg   string `toml:"status_bg" yaml:"status_bg"`
	ErrorFg    string `toml:"error_fg" yaml:"error_fg"`
}

// Default returns a configuration with all settings at their defaults.
func Default() Config {
	return Config{
		Fill: FillConfig{
			Column: DefaultFillColumn,
		},
		Editor: EditorConfig{
			TabWidth:   DefaultTabWidth,
			LineEnding: "auto",
		},
		UI: UIConfig{
			Theme: ThemeConfig{
				Foreground: "#d8dee9",
				Background: "#2e3440",
				StatusFg:   "#2e3440",
				StatusBg:   "#88c0d0",
				ErrorFg:    "#bf616a",
			},
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Fill.Column < 1 {
		return fmt.Errorf("%w: fill.column must be positive, got %d", ErrValidationFailed, c.Fill.Column)
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return fmt.Errorf("%w: editor.tab_width must be 1-16, got %d", ErrValidationFailed, c.Editor.TabWidth)
	}
	switch c.Editor.LineEnding {
	case "auto", "lf", "crlf":
	default:
		return fmt.Errorf("%w: editor.line_ending must be auto, lf, or crlf", ErrValidationFailed)
	}
	return nil
}

// Set assigns a setting by its dotted path. It is the write interface
// used by the script and environment loaders; file loaders unmarshal
// into the struct directly.
func (c *Config) Set(path string, value any) error {
	switch path {
	case "fill.column":
		n, err := toInt(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrTypeMismatch, path, err)
		}
		c.Fill.Column = n
	case "editor.tab_width":
		n, err := toInt(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrTypeMismatch, path, err)
		}
		c.Editor.TabWidth = n
	case "editor.line_ending":
		s, err := toString(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrTypeMismatch, path, err)
		}
		c.Editor.LineEnding = s
	case "ui.theme.foreground", "ui.theme.background",
		"ui.theme.status_fg", "ui.theme.status_bg", "ui.theme.error_fg":
		s, err := toString(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrTypeMismatch, path, err)
		}
		c.setThemeColor(path, s)
	default:
		return fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	return nil
}

func (c *Config) setThemeColor(path, hex string) {
	switch path {
	case "ui.theme.foreground":
		c.UI.Theme.Foreground = hex
	case "ui.theme.background":
		c.UI.Theme.Background = hex
	case "ui.theme.status_fg":
		c.UI.Theme.StatusFg = hex
	case "ui.theme.status_bg":
		c.UI.Theme.StatusBg = hex
	case "ui.theme.error_fg":
		c.UI.Theme.ErrorFg = hex
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		return strconv.Atoi(n)
	}
	return 0, fmt.Errorf("cannot convert %T to int", v)
}

func toString(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("cannot convert %T to string", v)
}
