package org

import (
	"errors"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ErrNoProperty is returned when a logical property is requested at a
// position that holds no property record.
var ErrNoProperty = errors.New("no property record at position")

// ContextKind tags the result of the context decision the user commands
// dispatch on.
type ContextKind uint8

const (
	// GenericContext means the position is outside any property record;
	// commands fall back to their generic behavior.
	GenericContext ContextKind = iota
	// PropertyContext means the position is on a property record line.
	PropertyContext
)

// String returns a string representation of the context kind.
func (k ContextKind) String() string {
	if k == PropertyContext {
		return "property"
	}
	return "generic"
}

// Context is the tagged classification of a cursor position. It is
// decided once per command invocation.
type Context struct {
	Kind    ContextKind
	Line    uint32
	Element Element
}

// ContextAt classifies the given line for command dispatch.
func ContextAt(r Reader, line uint32) Context {
	el := ElementAt(r, line)
	if el.Kind == ElementProperty {
		return Context{Kind: PropertyContext, Line: line, Element: el}
	}
	return Context{Kind: GenericContext, Line: line, Element: el}
}

// LogicalProperty is one primary record plus its trailing continuation
// records, in document order.
type LogicalProperty struct {
	Name      PropertyName // base name, continuation flag cleared
	StartLine uint32       // first record line (inclusive)
	EndLine   uint32       // last record line (inclusive)
	Records   []Element
}

// LogicalPropertyAt resolves the full logical property containing the
// record at the given line.
func LogicalPropertyAt(r Reader, line uint32) (LogicalProperty, error) {
	el := ElementAt(r, line)
	if el.Kind != ElementProperty {
		return LogicalProperty{}, ErrNoProperty
	}
	base := el.Name.Primary()

	// Walk up to the primary record. A continuation record extends the
	// record above it when that record shares the base name.
	start := line
	for start > 0 {
		cur := ElementAt(r, start)
		if !cur.Name.Continuation {
			break
		}
		prev := ElementAt(r, start-1)
		if prev.Kind != ElementProperty || !prev.Name.SameProperty(base) {
			break
		}
		start--
	}

	// Walk down over continuation records of the same base name.
	end := start
	for end+1 < r.LineCount() {
		next := ElementAt(r, end+1)
		if next.Kind != ElementProperty || !next.Name.Continuation || !next.Name.SameProperty(base) {
			break
		}
		end++
	}

	lp := LogicalProperty{Name: base, StartLine: start, EndLine: end}
	for l := start; l <= end; l++ {
		lp.Records = append(lp.Records, ElementAt(r, l))
	}
	return lp, nil
}

// Value reconstructs the logical value by joining record values in
// order. Values are joined with a single space, except that a value
// beginning with the escape-newline marker joins without a separator so
// that refilling stays close to a no-op.
func (lp LogicalProperty) Value() string {
	var sb strings.Builder
	for _, rec := range lp.Records {
		v := rec.Value
		if v == "" {
			continue
		}
		if sb.Len() > 0 && !strings.HasPrefix(v, EscapeNewline) {
			sb.WriteByte(' ')
		}
		sb.WriteString(v)
	}
	return sb.String()
}

// Keys returns the base names of all primary property records in
// document order, deduplicated.
func Keys(r Reader) []string {
	var keys []string
	seen := make(map[string]bool)
	for l := uint32(0); l < r.LineCount(); l++ {
		el := ElementAt(r, l)
		if el.Kind != ElementProperty || el.Name.Continuation {
			continue
		}
		if !seen[el.Name.Base] {
			seen[el.Name.Base] = true
			keys = append(keys, el.Name.Base)
		}
	}
	return keys
}

// KeysMatching returns the document's property keys fuzzy-filtered by
// query, best matches first. An empty query returns all keys.
func KeysMatching(r Reader, query string) []string {
	keys := Keys(r)
	if query == "" {
		return keys
	}
	matches := fuzzy.Find(query, keys)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}
