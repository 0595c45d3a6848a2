package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// loadTOML merges a TOML file into cfg. Keys absent from the file keep
// their current values.
func loadTOML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}
