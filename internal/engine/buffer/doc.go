// Package buffer provides a thread-safe, line-indexed text buffer used as
// the document model for outline editing commands.
//
// Text is stored with LF line endings internally; the configured line
// ending style is applied only when serializing with Bytes or WriteTo.
// The buffer maintains a line start table so that line lookups and
// offset/point conversion are cheap for interactive documents.
//
// Position Types:
//
//   - ByteOffset: raw byte position in the buffer
//   - Point: line and column (0-indexed, column in bytes)
//   - Range: half-open byte range [Start, End)
//
// All Buffer methods are thread-safe. Read operations acquire a read
// lock, write operations an exclusive lock.
package buffer
