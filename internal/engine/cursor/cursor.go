package cursor

import (
	"fmt"

	"github.com/dshills/orgfill/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Cursor represents an insertion point in the buffer.
// Cursor is an immutable value type.
type Cursor struct {
	offset ByteOffset
}

// New creates a cursor at the given offset.
func New(offset ByteOffset) Cursor {
	if offset < 0 {
		offset = 0
	}
	return Cursor{offset: offset}
}

// AtPoint creates a cursor at the given line/column of a buffer.
func AtPoint(b *buffer.Buffer, p Point) Cursor {
	return New(b.PointToOffset(p))
}

// Offset returns the cursor's byte offset.
func (c Cursor) Offset() ByteOffset {
	return c.offset
}

// Point returns the cursor's line/column position in the buffer.
func (c Cursor) Point(b *buffer.Buffer) Point {
	return b.OffsetToPoint(c.offset)
}

// MoveTo returns a new cursor at the given offset.
func (c Cursor) MoveTo(offset ByteOffset) Cursor {
	return New(offset)
}

// MoveBy returns a new cursor shifted by delta bytes.
func (c Cursor) MoveBy(delta ByteOffset) Cursor {
	return New(c.offset + delta)
}

// Clamp returns a cursor clamped to the valid range [0, maxOffset].
func (c Cursor) Clamp(maxOffset ByteOffset) Cursor {
	if c.offset < 0 {
		return Cursor{}
	}
	if c.offset > maxOffset {
		return Cursor{offset: maxOffset}
	}
	return c
}

// StartOfLine returns a cursor at the start of the cursor's current line.
func (c Cursor) StartOfLine(b *buffer.Buffer) Cursor {
	return New(b.LineStartOffset(c.Point(b).Line))
}

// EndOfLine returns a cursor at the end of the cursor's current line
// (before the newline).
func (c Cursor) EndOfLine(b *buffer.Buffer) Cursor {
	return New(b.LineEndOffset(c.Point(b).Line))
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d)", c.offset)
}

// Equals returns true if two cursors are at the same position.
func (c Cursor) Equals(other Cursor) bool {
	return c.offset == other.offset
}

// Before returns true if c is before other.
func (c Cursor) Before(other Cursor) bool {
	return c.offset < other.offset
}

// After returns true if c is after other.
func (c Cursor) After(other Cursor) bool {
	return c.offset > other.offset
}
