package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the buffer's serialization line ending style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithTabWidth sets the buffer's tab width.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}

// WithReadOnly marks the buffer read-only. The buffer itself does not
// enforce this; editing layers check it before mutating.
func WithReadOnly() Option {
	return func(b *Buffer) {
		b.readOnly = true
	}
}

// DetectLineEnding returns the most common line ending in the text.
// Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount, crCount int

	for i := 0; i < len(text); i++ {
		switch {
		case text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n':
			crlfCount++
			i++
		case text[i] == '\r':
			crCount++
		case text[i] == '\n':
			lfCount++
		}
	}

	if crlfCount > 0 && crlfCount >= lfCount && crlfCount >= crCount {
		return LineEndingCRLF
	}
	if crCount > 0 && crCount >= lfCount && crCount >= crlfCount {
		return LineEndingCR
	}
	return LineEndingLF
}

// WithDetectedLineEnding sets the serialization style based on content.
func WithDetectedLineEnding(text string) Option {
	return WithLineEnding(DetectLineEnding(text))
}
