package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dshills/orgfill/internal/dispatcher"
	"github.com/dshills/orgfill/internal/dispatcher/execctx"
	"github.com/dshills/orgfill/internal/dispatcher/handler"
	"github.com/dshills/orgfill/internal/dispatcher/handlers/property"
	"github.com/dshills/orgfill/internal/engine/buffer"
	"github.com/dshills/orgfill/internal/engine/cursor"
)

var (
	continueLine  int
	continueWrite bool
)

var continueCmd = &cobra.Command{
	Use:   "continue [file]",
	Short: "Insert a continuation record below a property line",
	Args:  cobra.ExactArgs(1),
	RunE:  runContinue,
}

func init() {
	continueCmd.Flags().IntVarP(&continueLine, "line", "l", 0, "property line to continue (1-based)")
	continueCmd.Flags().BoolVarP(&continueWrite, "write", "w", false, "write the result back to the file")
}

func runContinue(cmd *cobra.Command, args []string) error {
	if continueLine < 1 {
		return errors.New("continue needs --line")
	}

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
	exec.Cursor = cursor.AtPoint(buf, buffer.Point{Line: uint32(continueLine - 1)})

	disp := dispatcher.New()
	disp.Register(property.NewHandler())

	res := disp.Dispatch(handler.Action{Name: property.ActionInsertContinuation}, exec)
	if res.IsError() {
		return res.Error
	}

	return emit(args[0], buf, continueWrite)
}
