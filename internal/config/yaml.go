package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadYAML merges a YAML file into cfg. Keys absent from the file keep
// their current values.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}
