package org

import "strings"

// ElementKind classifies a document line.
type ElementKind uint8

const (
	// ElementParagraph is any line with no recognized structure.
	ElementParagraph ElementKind = iota
	// ElementBlank is a line of only whitespace.
	ElementBlank
	// ElementHeading is an outline heading line ("* ...", "** ...").
	ElementHeading
	// ElementDrawerBegin is the ":PROPERTIES:" drawer opener.
	ElementDrawerBegin
	// ElementDrawerEnd is the ":END:" drawer closer.
	ElementDrawerEnd
	// ElementProperty is a property record line inside a drawer.
	ElementProperty
)

// String returns a string representation of the kind.
func (k ElementKind) String() string {
	switch k {
	case ElementParagraph:
		return "paragraph"
	case ElementBlank:
		return "blank"
	case ElementHeading:
		return "heading"
	case ElementDrawerBegin:
		return "drawer-begin"
	case ElementDrawerEnd:
		return "drawer-end"
	case ElementProperty:
		return "property"
	default:
		return "unknown"
	}
}

// Element is the structural classification of one document line.
type Element struct {
	Kind   ElementKind
	Name   PropertyName // set for ElementProperty
	Value  string       // record value text, set for ElementProperty
	Indent string       // leading whitespace of the line
	Level  int          // heading star count, set for ElementHeading
}

// Reader is the read-only view of a document that structure detection
// operates on. *buffer.Buffer satisfies it.
type Reader interface {
	LineCount() uint32
	LineText(line uint32) string
}

// ParseLine classifies a single line in isolation. Property-shaped lines
// are reported as ElementProperty even outside a drawer; use ElementAt
// for the drawer-aware classification.
func ParseLine(line string) Element {
	stripped := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(stripped)]

	if stripped == "" {
		return Element{Kind: ElementBlank, Indent: indent}
	}

	if indent == "" && stripped[0] == '*' {
		level := 0
		for level < len(stripped) && stripped[level] == '*' {
			level++
		}
		if level < len(stripped) && stripped[level] == ' ' {
			return Element{Kind: ElementHeading, Level: level}
		}
	}

	if stripped[0] == ':' {
		if el, ok := parseRecord(stripped, indent); ok {
			return el
		}
	}

	return Element{Kind: ElementParagraph, Indent: indent}
}

// parseRecord parses ":TOKEN:" / ":TOKEN: value" shaped lines.
func parseRecord(stripped, indent string) (Element, bool) {
	close := strings.IndexByte(stripped[1:], ':')
	if close < 0 {
		return Element{}, false
	}
	token := stripped[1 : 1+close]
	rest := stripped[2+close:]

	// Value, when present, is separated from the name by one space.
	var value string
	switch {
	case rest == "":
		value = ""
	case rest[0] == ' ' || rest[0] == '\t':
		value = rest[1:]
	default:
		return Element{}, false
	}

	if strings.EqualFold(token, "PROPERTIES") {
		return Element{Kind: ElementDrawerBegin, Indent: indent}, true
	}
	if strings.EqualFold(token, "END") {
		return Element{Kind: ElementDrawerEnd, Indent: indent}, true
	}

	name, err := ParseName(token)
	if err != nil {
		return Element{}, false
	}
	return Element{Kind: ElementProperty, Name: name, Value: value, Indent: indent}, true
}

// ElementAt classifies the line at the given position, drawer-aware: a
// property-shaped line counts as a property record only when it sits
// between a ":PROPERTIES:" opener and an ":END:" closer with nothing
// but records in between. Both user commands share this one predicate.
func ElementAt(r Reader, line uint32) Element {
	if line >= r.LineCount() {
		return Element{Kind: ElementBlank}
	}
	el := ParseLine(r.LineText(line))
	if el.Kind != ElementProperty {
		return el
	}
	if !inDrawer(r, line) {
		return Element{Kind: ElementParagraph, Indent: el.Indent}
	}
	return el
}

// inDrawer reports whether the property record at line is enclosed by
// drawer delimiters.
func inDrawer(r Reader, line uint32) bool {
	// Upward: only records may separate the line from the opener.
	foundBegin := false
	for l := line; l > 0; {
		l--
		switch ParseLine(r.LineText(l)).Kind {
		case ElementProperty:
			continue
		case ElementDrawerBegin:
			foundBegin = true
		default:
			return false
		}
		break
	}
	if !foundBegin {
		return false
	}

	// Downward: only records may separate the line from the closer.
	for l := line + 1; l < r.LineCount(); l++ {
		switch ParseLine(r.LineText(l)).Kind {
		case ElementProperty:
			continue
		case ElementDrawerEnd:
			return true
		default:
			return false
		}
	}
	return false
}
