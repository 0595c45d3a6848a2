package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/orgfill/internal/dispatcher"
	"github.com/dshills/orgfill/internal/dispatcher/execctx"
	"github.com/dshills/orgfill/internal/dispatcher/handler"
	"github.com/dshills/orgfill/internal/dispatcher/handlers/property"
	"github.com/dshills/orgfill/internal/engine/buffer"
	"github.com/dshills/orgfill/internal/engine/cursor"
	"github.com/dshills/orgfill/internal/fill"
	"github.com/dshills/orgfill/internal/org"
)

var (
	fillLine  int
	fillAll   bool
	fillWrite bool
)

var fillCmd = &cobra.Command{
	Use:   "fill [file]",
	Short: "Reflow property values to the fill column",
	Args:  cobra.ExactArgs(1),
	RunE:  runFill,
}

func init() {
	fillCmd.Flags().IntVarP(&fillLine, "line", "l", 0, "line of the property to reflow (1-based)")
	fillCmd.Flags().BoolVarP(&fillAll, "all", "a", false, "reflow every property in the document")
	fillCmd.Flags().BoolVarP(&fillWrite, "write", "w", false, "write the result back to the file")
}

func runFill(cmd *cobra.Command, args []string) error {
	if !fillAll && fillLine < 1 {
		return errors.New("fill needs --line or --all")
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
	exec.Fill = fill.Config{FillColumn: resolveWidth(cfg)}
	exec.FilePath = args[0]

	disp := dispatcher.New()
	disp.Register(property.NewHandler())

	if fillAll {
		if err := fillAllProperties(disp, exec); err != nil {
			return err
		}
	} else {
		exec.Cursor = cursor.AtPoint(buf, buffer.Point{Line: uint32(fillLine - 1)})
		res := disp.Dispatch(handler.Action{Name: property.ActionFill}, exec)
		if res.IsError() {
			return res.Error
		}
		if res.Status == handler.StatusNoOp && res.Message != "" {
			fmt.Fprintln(os.Stderr, "orgfill:", res.Message)
		}
	}

	return emit(args[0], buf, fillWrite)
}

// fillAllProperties reflows each logical property in the document,
// bottom-up so earlier line numbers stay valid as lower records grow.
func fillAllProperties(disp *dispatcher.Dispatcher, exec *execctx.ExecutionContext) error {
	buf := exec.Buffer

	var primaries []uint32
	for line := uint32(0); line < buf.LineCount(); line++ {
		dctx := org.ContextAt(buf, line)
		if dctx.Kind == org.PropertyContext && !dctx.Element.Name.Continuation {
			primaries = append(primaries, line)
		}
	}

	for i := len(primaries) - 1; i >= 0; i-- {
		exec.Cursor = cursor.AtPoint(buf, buffer.Point{Line: primaries[i]})
		res := disp.Dispatch(handler.Action{Name: property.ActionFill}, exec)
		if res.IsError() {
			return fmt.Errorf("line %d: %w", primaries[i]+1, res.Error)
		}
	}
	return nil
}

// emit writes the buffer back to the file or prints it to stdout.
func emit(path string, b *buffer.Buffer, write bool) error {
	if write {
		return writeDocument(path, b)
	}
	_, err := os.Stdout.Write(b.Bytes())
	return err
}
