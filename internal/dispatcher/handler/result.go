package handler

import (
	"fmt"

	"github.com/dshills/orgfill/internal/engine/cursor"
)

// ResultStatus indicates the outcome of an action.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the action had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result represents the outcome of handling an action.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Message is an optional status message for display.
	Message string

	// Cursor is the cursor position after the action, when the action
	// moved it.
	Cursor *cursor.Cursor
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// WithCursor returns a copy of the result carrying a new cursor position.
func (r Result) WithCursor(c cursor.Cursor) Result {
	r.Cursor = &c
	return r
}

// WithMessage returns a copy of the result with the given message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// NoOp creates a no-operation result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Result{Status: StatusError, Error: fmt.Errorf(format, args...)}
}
