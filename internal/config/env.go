package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// envMapping maps environment variables to setting paths.
var envMapping = map[string]string{
	"ORGFILL_FILL_COLUMN": "fill.column",
	"ORGFILL_TAB_WIDTH":   "editor.tab_width",
	"ORGFILL_LINE_ENDING": "editor.line_ending",
	"ORGFILL_THEME_FG":    "ui.theme.foreground",
	"ORGFILL_THEME_BG":    "ui.theme.background",
	"ORGFILL_STATUS_FG":   "ui.theme.status_fg",
	"ORGFILL_STATUS_BG":   "ui.theme.status_bg",
	"ORGFILL_ERROR_FG":    "ui.theme.error_fg",
}

// loadEnv merges environment variables into cfg. A .env file in the
// working directory is read first so local overrides work without
// exporting anything.
func loadEnv(cfg *Config) error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("loading .env: %w", err)
		}
	}

	for env, path := range envMapping {
		val, ok := os.LookupEnv(env)
		if !ok || val == "" {
			continue
		}
		if err := cfg.Set(path, val); err != nil {
			return fmt.Errorf("environment variable %s: %w", env, err)
		}
	}
	return nil
}
