package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint is an opaque, comparable digest of a transformer's own configuration.
// It is independent of the artifact being transformed.
type Fingerprint string

// String returns the fingerprint in its display form.
func (f Fingerprint) String() string {
	return string(f)
}

// NewFingerprint hashes the given fields in order into a Fingerprint.
// Fields are separated by a zero byte so that ("ab", "c") and ("a", "bc") differ.
func NewFingerprint(fields ...string) Fingerprint {
	hasher := xxhash.New()
	for _, field := range fields {
		_, _ = hasher.WriteString(field)
		_, _ = hasher.Write([]byte{0})
	}
	return Fingerprint(fmt.Sprintf("%016x", hasher.Sum64()))
}

// TransformIdentity identifies a transformer for equality, hashing and cache-key display.
// Two transformers with equal identities are the same transformation.
type TransformIdentity struct {
	DisplayName        string
	SecondaryInputHash Fingerprint
}

// NewTransformIdentity creates a TransformIdentity.
func NewTransformIdentity(displayName string, fingerprint Fingerprint) TransformIdentity {
	return TransformIdentity{
		DisplayName:        displayName,
		SecondaryInputHash: fingerprint,
	}
}

// String returns the canonical "<displayName>@<fingerprint>" form.
func (id TransformIdentity) String() string {
	return id.DisplayName + "@" + id.SecondaryInputHash.String()
}

// IsZero reports whether the identity is unset.
func (id TransformIdentity) IsZero() bool {
	return id == TransformIdentity{}
}
