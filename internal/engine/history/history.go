// Package history records applied edits so that compound document
// mutations (such as a fill replacing several record lines at once)
// stay undoable as a single step.
package history

import (
	"errors"
	"sync"

	"github.com/dshills/orgfill/internal/engine/buffer"
)

// ErrNothingToUndo is returned when the undo stack is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 200

// Record describes one applied edit: the range it replaced, the range
// it produced, and both texts.
type Record struct {
	OldRange    buffer.Range
	NewRange    buffer.Range
	OldText     string
	NewText     string
	Description string
}

// Stack is a bounded LIFO of applied edits.
type Stack struct {
	mu      sync.Mutex
	records []Record
	max     int
}

// NewStack creates an undo stack holding at most max entries.
// A non-positive max uses DefaultMaxEntries.
func NewStack(max int) *Stack {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Stack{max: max}
}

// Push records an applied edit.
func (s *Stack) Push(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	if len(s.records) > s.max {
		s.records = s.records[len(s.records)-s.max:]
	}
}

// Undo reverses the most recent edit against the buffer and returns it.
func (s *Stack) Undo(b *buffer.Buffer) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 {
		return Record{}, ErrNothingToUndo
	}
	rec := s.records[len(s.records)-1]

	if _, err := b.Replace(rec.NewRange.Start, rec.NewRange.End, rec.OldText); err != nil {
		return Record{}, err
	}
	s.records = s.records[:len(s.records)-1]
	return rec, nil
}

// CanUndo returns true if there is at least one recorded edit.
func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records) > 0
}

// Len returns the number of recorded edits.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Clear drops all recorded edits.
func (s *Stack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}
