// Package execctx provides the execution context for action handlers.
package execctx

import (
	"errors"

	"github.com/dshills/orgfill/internal/engine/buffer"
	"github.com/dshills/orgfill/internal/engine/cursor"
	"github.com/dshills/orgfill/internal/engine/history"
	"github.com/dshills/orgfill/internal/fill"
)

// ErrReadOnly is returned when an editing action targets a read-only buffer.
var ErrReadOnly = errors.New("buffer is read-only")

// ErrNoBuffer is returned when the context has no buffer attached.
var ErrNoBuffer = errors.New("no buffer in execution context")

// ExecutionContext carries everything a handler needs to run one
// action: the document, the cursor position the action applies at, the
// formatting configuration, and the undo history.
type ExecutionContext struct {
	// Buffer is the document being edited.
	Buffer *buffer.Buffer

	// Cursor is the position the action applies at.
	Cursor cursor.Cursor

	// Fill is the formatting configuration for reflow operations.
	Fill fill.Config

	// History records applied edits for undo. Optional; when nil,
	// edits are not recorded.
	History *history.Stack

	// FilePath is the document's backing file, if any.
	FilePath string
}

// New creates an execution context with default formatting.
func New(b *buffer.Buffer) *ExecutionContext {
	return &ExecutionContext{
		Buffer: b,
		Fill:   fill.DefaultConfig(),
	}
}

// ValidateForEdit checks that the context can carry a mutating action.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if ctx.Buffer == nil {
		return ErrNoBuffer
	}
	if ctx.Buffer.ReadOnly() {
		return ErrReadOnly
	}
	return nil
}

// ApplyReplace performs a replace on the buffer and records it in the
// history when one is attached. The old text is captured before the
// mutation so the edit stays undoable as one step.
func (ctx *ExecutionContext) ApplyReplace(start, end buffer.ByteOffset, text, desc string) (buffer.ByteOffset, error) {
	old := ctx.Buffer.TextRange(start, end)
	newEnd, err := ctx.Buffer.Replace(start, end, text)
	if err != nil {
		return 0, err
	}
	if ctx.History != nil {
		ctx.History.Push(history.Record{
			OldRange:    buffer.Range{Start: start, End: end},
			NewRange:    buffer.Range{Start: start, End: newEnd},
			OldText:     old,
			NewText:     text,
			Description: desc,
		})
	}
	return newEnd, nil
}
