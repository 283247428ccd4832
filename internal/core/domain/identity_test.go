package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/morph/internal/core/domain"
)

func TestNewFingerprint(t *testing.T) {
	a := domain.NewFingerprint("unzip", "out")
	assert.Equal(t, a, domain.NewFingerprint("unzip", "out"))
	assert.Len(t, a.String(), 16)
	assert.NotEqual(t, domain.NewFingerprint("ab", "c"), domain.NewFingerprint("a", "bc"))
}

func TestTransformIdentity(t *testing.T) {
	id := domain.NewTransformIdentity("Unzip", "abc123")
	assert.Equal(t, "Unzip@abc123", id.String())
	assert.False(t, id.IsZero())
	assert.Equal(t, id, domain.NewTransformIdentity("Unzip", "abc123"))
	assert.NotEqual(t, id, domain.NewTransformIdentity("Unzip", "def456"))
	assert.True(t, domain.TransformIdentity{}.IsZero())
}

func TestRecordKey(t *testing.T) {
	id := domain.NewTransformIdentity("Unzip", "abc123")
	assert.Equal(t, "Unzip@abc123|ffff", domain.RecordKey(id, "ffff"))
}
