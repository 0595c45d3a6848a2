package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Discover returns the first configuration file found in the standard
// locations: $ORGFILL_CONFIG if set, then config.{toml,yaml,yml,lua}
// under the user config directory. An empty path with a nil error means
// no file exists, which is not an error.
func Discover() (string, error) {
	if p := os.Getenv("ORGFILL_CONFIG"); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("config file %s: %w", p, err)
		}
		return p, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", nil
	}
	for _, name := range []string{"config.toml", "config.yaml", "config.yml", "config.lua"} {
		p := filepath.Join(dir, "orgfill", name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// LoadFile merges the settings from path into cfg, choosing the parser
// by file extension.
func LoadFile(cfg *Config, path string) error {
	switch filepath.Ext(path) {
	case ".toml":
		return loadTOML(cfg, path)
	case ".yaml", ".yml":
		return loadYAML(cfg, path)
	case ".lua":
		return loadScript(cfg, path)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Load builds the effective configuration: defaults, then the
// discovered (or explicitly given) config file, then environment
// variables. A missing file is skipped silently; a broken one is an
// error.
func Load(explicitPath string) (Config, error) {
	cfg := Default()

	path := explicitPath
	if path == "" {
		var err error
		if path, err = Discover(); err != nil {
			return cfg, err
		}
	}
	if path != "" {
		if err := LoadFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	if err := loadEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
