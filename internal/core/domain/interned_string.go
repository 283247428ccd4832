package domain

import "unique"

// InternedString is a value object that wraps a unique.Handle[string].
// It keeps artifact names and executor cache keys cheap to compare and to use as map keys.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString creates a new InternedString from a string.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	if is.IsZero() {
		return ""
	}
	return is.h.Value()
}

// IsZero reports whether the value was never set.
func (is InternedString) IsZero() bool {
	var zero unique.Handle[string]
	return is.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}

// NewInternedStrings converts a slice of strings to InternedStrings.
func NewInternedStrings(values []string) []InternedString {
	out := make([]InternedString, len(values))
	for i, v := range values {
		out[i] = NewInternedString(v)
	}
	return out
}
