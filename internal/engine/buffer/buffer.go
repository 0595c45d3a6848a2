package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// LineEnding specifies the line ending style used when serializing.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingLF:
		return "LF"
	case LineEndingCRLF:
		return "CRLF"
	case LineEndingCR:
		return "CR"
	default:
		return "LF"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingLF:
		return "\n"
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is a line-indexed text buffer. Text is held internally with LF
// line endings; the configured LineEnding is applied when serializing.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       string
	starts     []int // byte offset of each line start; always at least one entry
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
	readOnly   bool
}

// New creates a new empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.reindex()
	return b
}

// FromString creates a buffer with initial content.
func FromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.text = normalize(s)
	b.reindex()
	return b
}

// FromReader creates a buffer from an io.Reader.
func FromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromString(string(data), opts...), nil
}

// normalize converts all line endings to LF.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// reindex rebuilds the line start table. Callers must hold the write lock
// (or be the sole owner during construction).
func (b *Buffer) reindex() {
	starts := b.starts[:0]
	starts = append(starts, 0)
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	b.starts = starts
}

// Read Operations

// Text returns the full buffer content with LF line endings.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// TextRange returns text in the given byte range. Offsets are clamped
// to the buffer; an inverted range yields the empty string.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start = clampOffset(start, len(b.text))
	end = clampOffset(end, len(b.text))
	if start > end {
		return ""
	}
	return b.text[start:end]
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text) == 0
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint32(len(b.starts))
}

// LineText returns the text of a specific line (without newline).
// Out-of-range lines yield the empty string.
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(line) >= len(b.starts) {
		return ""
	}
	return b.text[b.starts[line]:b.lineEnd(line)]
}

// LineLen returns the byte length of a specific line (without newline).
func (b *Buffer) LineLen(line uint32) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(line) >= len(b.starts) {
		return 0
	}
	return b.lineEnd(line) - b.starts[line]
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(line) >= len(b.starts) {
		return ByteOffset(len(b.text))
	}
	return ByteOffset(b.starts[line])
}

// LineEndOffset returns the byte offset of the end of a line (before newline).
func (b *Buffer) LineEndOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(line) >= len(b.starts) {
		return ByteOffset(len(b.text))
	}
	return ByteOffset(b.lineEnd(line))
}

// lineEnd returns the exclusive end of a line, not counting the newline.
// Callers must hold a lock.
func (b *Buffer) lineEnd(line uint32) int {
	if int(line)+1 < len(b.starts) {
		return b.starts[line+1] - 1
	}
	return len(b.text)
}

// Coordinate Conversion

// OffsetToPoint converts a byte offset to line/column.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	offset = clampOffset(offset, len(b.text))

	// Binary search for the containing line.
	lo, hi := 0, len(b.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if ByteOffset(b.starts[mid]) <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return Point{Line: uint32(lo), Column: uint32(int(offset) - b.starts[lo])}
}

// PointToOffset converts line/column to a byte offset. The column is
// clamped to the line length and the line to the buffer.
func (b *Buffer) PointToOffset(p Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(p.Line) >= len(b.starts) {
		return ByteOffset(len(b.text))
	}
	col := int(p.Column)
	if max := b.lineEnd(p.Line) - b.starts[p.Line]; col > max {
		col = max
	}
	return ByteOffset(b.starts[p.Line] + col)
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || int(offset) > len(b.text) {
		return 0, ErrOffsetOutOfRange
	}

	text = normalize(text)
	b.text = b.text[:offset] + text + b.text[offset:]
	b.reindex()
	b.revisionID = NewRevisionID()

	return offset + ByteOffset(len(text)), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || int(end) > len(b.text) {
		return ErrRangeInvalid
	}

	b.text = b.text[:start] + b.text[end:]
	b.reindex()
	b.revisionID = NewRevisionID()

	return nil
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || int(end) > len(b.text) {
		return 0, ErrRangeInvalid
	}

	text = normalize(text)
	b.text = b.text[:start] + text + b.text[end:]
	b.reindex()
	b.revisionID = NewRevisionID()

	return start + ByteOffset(len(text)), nil
}

// Serialization

// Bytes returns the buffer content with the configured line endings applied.
func (b *Buffer) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.lineEnding == LineEndingLF {
		return []byte(b.text)
	}
	return []byte(strings.ReplaceAll(b.text, "\n", b.lineEnding.Sequence()))
}

// WriteTo writes the serialized buffer to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes())
	return int64(n), err
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// ReadOnly returns true if the buffer was opened read-only.
func (b *Buffer) ReadOnly() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readOnly
}

func clampOffset(off ByteOffset, max int) ByteOffset {
	if off < 0 {
		return 0
	}
	if int(off) > max {
		return ByteOffset(max)
	}
	return off
}
