package org

import (
	"errors"
	"strings"
)

// ErrMalformedName is returned when a property name does not conform to
// the token syntax: non-empty, no colons, no whitespace.
var ErrMalformedName = errors.New("malformed property name")

// ContinuationMarker is the character appended to a property name to
// mark a record as continuing the previous record's value.
const ContinuationMarker = '+'

// EscapeNewline is the literal two-character sequence inside a property
// value denoting a user-intended hard line break. It is preserved
// verbatim; it is never rendered as an actual newline.
const EscapeNewline = `\n`

// PropertyName is a parsed property name token: a base name plus a flag
// telling whether the token carried the trailing continuation marker.
type PropertyName struct {
	Base         string
	Continuation bool
}

// ParseName parses a name token as it appears between the colons of a
// record line, e.g. "TITLE" or "TITLE+".
func ParseName(token string) (PropertyName, error) {
	n := PropertyName{Base: token}
	if strings.HasSuffix(token, string(ContinuationMarker)) {
		n.Base = token[:len(token)-1]
		n.Continuation = true
	}
	if !validBase(n.Base) {
		return PropertyName{}, ErrMalformedName
	}
	return n, nil
}

// validBase reports whether s is a legal base name.
func validBase(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsAny(s, ": \t\n")
}

// String renders the name token, including the continuation marker when set.
func (n PropertyName) String() string {
	if n.Continuation {
		return n.Base + string(ContinuationMarker)
	}
	return n.Base
}

// Primary returns the name with the continuation flag cleared.
func (n PropertyName) Primary() PropertyName {
	return PropertyName{Base: n.Base}
}

// Marked returns the name with the continuation flag set.
func (n PropertyName) Marked() PropertyName {
	return PropertyName{Base: n.Base, Continuation: true}
}

// SameProperty reports whether two names belong to the same logical
// property, ignoring the continuation flag.
func (n PropertyName) SameProperty(other PropertyName) bool {
	return n.Base == other.Base
}
