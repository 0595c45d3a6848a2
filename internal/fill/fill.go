package fill

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/orgfill/internal/org"
)

// ErrInvalidWidth is returned when the effective wrap width (fill column
// minus the rendered record prefix) is not positive.
var ErrInvalidWidth = errors.New("effective wrap width is not positive")

// DefaultFillColumn is the target line width used when none is configured.
const DefaultFillColumn = 70

// Config carries the formatting parameters for reflow operations.
type Config struct {
	// FillColumn is the target width, in display columns, of rendered
	// lines including the record prefix.
	FillColumn int
}

// DefaultConfig returns the default formatting configuration.
func DefaultConfig() Config {
	return Config{FillColumn: DefaultFillColumn}
}

// PrefixWidth returns the display width of the rendered record prefix
// for the given property name: the two colons, the name, and the marker
// and separator columns (":NAME: " and ":NAME+: " are costed alike).
func PrefixWidth(name org.PropertyName) int {
	return uniseg.StringWidth(name.Base) + 4
}

// Wrap splits value at escape-newline markers and greedy-wraps each
// resulting segment independently to the width remaining after the
// record prefix for name. Segment order and line order are preserved;
// every segment yields at least one line. The markers reappear verbatim
// as leading text on the first line of their segment.
func Wrap(value string, name org.PropertyName, cfg Config) ([][]string, error) {
	width := cfg.FillColumn - PrefixWidth(name)
	if width <= 0 {
		return nil, fmt.Errorf("%w: fill column %d, prefix %d",
			ErrInvalidWidth, cfg.FillColumn, PrefixWidth(name))
	}

	segments := splitSegments(value)
	wrapped := make([][]string, 0, len(segments))
	for _, seg := range segments {
		wrapped = append(wrapped, wrapSegment(seg, width))
	}
	return wrapped, nil
}

// splitSegments splits value on the escape-newline marker. The first
// character is held aside so that a marker starting the value is kept as
// plain leading text rather than producing a phantom empty first
// segment. Every later piece gets its marker restored as a leading
// literal before empty pieces are discarded, so marker text is never
// lost even around one-character or empty segments.
func splitSegments(value string) []string {
	if value == "" {
		return []string{""}
	}

	head, rest := value[:1], value[1:]
	pieces := strings.Split(rest, org.EscapeNewline)
	for i := 1; i < len(pieces); i++ {
		pieces[i] = org.EscapeNewline + pieces[i]
	}

	// Only the leading piece can still be empty; it is empty exactly
	// when a marker immediately follows the preserved first character.
	if pieces[0] == "" {
		return append([]string{head}, pieces[1:]...)
	}
	pieces[0] = head + pieces[0]
	return pieces
}

// wrapSegment greedy-wraps one segment to the given width, breaking only
// at whitespace. A segment with no words yields a single empty line.
func wrapSegment(seg string, width int) []string {
	words := strings.Fields(strings.TrimSpace(seg))
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	cur := words[0]
	curWidth := uniseg.StringWidth(cur)
	for _, word := range words[1:] {
		w := uniseg.StringWidth(word)
		if curWidth+1+w <= width {
			cur += " " + word
			curWidth += 1 + w
			continue
		}
		lines = append(lines, cur)
		cur = word
		curWidth = w
	}
	return append(lines, cur)
}

// Format flattens wrapped segment lines into rendered record lines: the
// first line as the primary record, every later line as a continuation
// record. The name's continuation flag is ignored; records are always
// rendered from the base name.
func Format(name org.PropertyName, wrapped [][]string) ([]string, error) {
	if _, err := org.ParseName(name.Base); err != nil {
		return nil, err
	}

	var out []string
	for _, seg := range wrapped {
		for _, line := range seg {
			if len(out) == 0 {
				out = append(out, ":"+name.Base+": "+line)
			} else {
				out = append(out, ":"+name.Base+"+: "+line)
			}
		}
	}
	if len(out) == 0 {
		out = append(out, ":"+name.Base+": ")
	}
	return out, nil
}

// Reflow is the full pipeline: wrap the logical value and render the
// record lines for it.
func Reflow(value string, name org.PropertyName, cfg Config) ([]string, error) {
	wrapped, err := Wrap(value, name, cfg)
	if err != nil {
		return nil, err
	}
	return Format(name, wrapped)
}
