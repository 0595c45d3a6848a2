// Package config loads and validates orgfill settings.
//
// Configuration merges in precedence order: built-in defaults, then a
// config file (TOML, YAML, or a Lua script), then ORGFILL_* environment
// variables (optionally via a .env file). The file is discovered under
// the user config directory or pointed at with $ORGFILL_CONFIG.
//
// The watcher subpackage reloads the file when it changes on disk.
package config
