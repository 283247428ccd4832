package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/morph/internal/core/domain"
)

func TestArtifactStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status     domain.ArtifactStatus
		isTerminal bool
	}{
		{domain.ArtifactStatusPending, false},
		{domain.ArtifactStatusRunning, false},
		{domain.ArtifactStatusResolved, true},
		{domain.ArtifactStatusCached, true},
		{domain.ArtifactStatusFailed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.status.IsTerminal())
		})
	}
}

func TestNormalizeArtifactStatus(t *testing.T) {
	assert.Equal(t, domain.ArtifactStatusCached, domain.NormalizeArtifactStatus("CACHED"))
	assert.Equal(t, domain.ArtifactStatusFailed, domain.NormalizeArtifactStatus("failed"))
	assert.Equal(t, domain.ArtifactStatusPending, domain.NormalizeArtifactStatus("bogus"))
}
