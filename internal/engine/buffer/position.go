package buffer

import (
	"fmt"
	"sync/atomic"
)

// ByteOffset represents a byte position in the buffer.
// This is the fundamental position type, directly indexing into the text.
type ByteOffset = int64

// Point represents a line and column position.
// Both Line and Column are 0-indexed.
// Column is measured in bytes from the start of the line.
type Point struct {
	Line   uint32 // 0-indexed line number
	Column uint32 // 0-indexed column (byte offset within line)
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Column != other.Column {
		if p.Column < other.Column {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// Range represents a half-open byte range [Start, End) in the buffer.
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d..%d)", r.Start, r.End)
}

// Len returns the byte length of the range.
func (r Range) Len() ByteOffset {
	return r.End - r.Start
}

// IsEmpty returns true if the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.Start >= r.End
}

// Contains returns true if the offset falls inside the range.
func (r Range) Contains(off ByteOffset) bool {
	return off >= r.Start && off < r.End
}

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

// revisionCounter is used to generate unique revision IDs.
var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
// This is thread-safe using atomic operations.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
