package domain

import "unique"

// InternedString wraps a unique.Handle[string].
// Filenames are looked up on every row and every cache read, so the store and
// the session tracker key their maps by interned handles instead of raw strings.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	var zero unique.Handle[string]
	if is.h == zero {
		return ""
	}
	return is.h.Value()
}
