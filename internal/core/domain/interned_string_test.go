package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/morph/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	is1 := domain.NewInternedString("hello")
	is2 := domain.NewInternedString("hello")

	assert.Equal(t, is1, is2)
	assert.Equal(t, "hello", is1.String())
	assert.False(t, is1.IsZero())

	var zero domain.InternedString
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())
}

func TestInternedStringJSON(t *testing.T) {
	type record struct {
		Name domain.InternedString `json:"name"`
	}

	data, err := json.Marshal(record{Name: domain.NewInternedString("lib")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"lib"}`, string(data))

	var decoded record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, domain.NewInternedString("lib"), decoded.Name)
}

func TestNewInternedStrings(t *testing.T) {
	got := domain.NewInternedStrings([]string{"a", "b", "a"})
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[1].String())
	assert.Equal(t, got[0], got[2])

	assert.Empty(t, domain.NewInternedStrings(nil))
}
