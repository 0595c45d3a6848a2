package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/orgfill/internal/config"
	"github.com/dshills/orgfill/internal/config/watcher"
	"github.com/dshills/orgfill/internal/dispatcher/execctx"
	"github.com/dshills/orgfill/internal/engine/history"
	"github.com/dshills/orgfill/internal/fill"
	"github.com/dshills/orgfill/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Edit a document interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	buf, err := openDocument(args[0], cfg)
	if err != nil {
		return err
	}

	exec := execctx.New(buf)
	exec.FilePath = args[0]
	exec.Fill = fill.Config{FillColumn: resolveWidth(cfg)}
	exec.History = history.NewStack(0)

	session, err := ui.NewSession(exec, cfg)
	if err != nil {
		return err
	}

	// Live-reload the config file while the session runs.
	if path := configFilePath(); path != "" {
		w, err := watcher.New(path, func(p string) {
			if reloaded, err := config.Load(p); err == nil {
				session.PostReload(reloaded)
			}
		})
		if err == nil {
			defer w.Close()
		}
	}

	return session.Run()
}

// configFilePath returns the config file this invocation would load,
// or "" when running on pure defaults.
func configFilePath() string {
	if configPath != "" {
		return configPath
	}
	path, err := config.Discover()
	if err != nil {
		return ""
	}
	return path
}
