// Package main is the entry point for the orgfill property editor.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/orgfill/internal/config"
	"github.com/dshills/orgfill/internal/engine/buffer"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	configPath string
	fillColumn int
)

var rootCmd = &cobra.Command{
	Use:   "orgfill",
	Short: "Reflow and edit property drawers in outline documents",
	Long: `orgfill edits property drawers in org-style outline documents:
it reflows long property values across continuation records (:NAME+:)
and inserts new continuation lines, from the command line or an
interactive terminal session.`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "orgfill:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: discovered)")
	rootCmd.PersistentFlags().IntVarP(&fillColumn, "col", "c", 0, "fill column (default: config, then terminal width)")

	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(continueCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(editCmd)
}

// loadConfig builds the effective configuration for this invocation.
func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// openDocument reads a file into a buffer, honoring the configured
// line ending policy.
func openDocument(path string, cfg config.Config) (*buffer.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var le buffer.LineEnding
	switch cfg.Editor.LineEnding {
	case "lf":
		le = buffer.LineEndingLF
	case "crlf":
		le = buffer.LineEndingCRLF
	default:
		le = buffer.DetectLineEnding(string(data))
	}

	return buffer.FromString(string(data),
		buffer.WithLineEnding(le),
		buffer.WithTabWidth(cfg.Editor.TabWidth),
	), nil
}

// writeDocument saves a buffer back to its file, keeping the file mode.
func writeDocument(path string, b *buffer.Buffer) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, b.Bytes(), mode)
}

// resolveWidth picks the fill column: the --col flag wins, then a
// non-default config value, then a narrow terminal, then the default.
func resolveWidth(cfg config.Config) int {
	if fillColumn > 0 {
		return fillColumn
	}
	if cfg.Fill.Column != config.DefaultFillColumn {
		return cfg.Fill.Column
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < config.DefaultFillColumn {
		return w
	}
	return cfg.Fill.Column
}
