package domain

import "strings"

// ArtifactStatus represents the lifecycle state of an artifact during resolution.
type ArtifactStatus string

const (
	// ArtifactStatusPending indicates the artifact is waiting for its dependencies.
	ArtifactStatusPending ArtifactStatus = "pending"
	// ArtifactStatusRunning indicates the artifact's chain is being applied.
	ArtifactStatusRunning ArtifactStatus = "running"
	// ArtifactStatusResolved indicates the chain produced the artifact's files.
	ArtifactStatusResolved ArtifactStatus = "resolved"
	// ArtifactStatusCached indicates every step of the chain was answered from memoized results.
	ArtifactStatusCached ArtifactStatus = "cached"
	// ArtifactStatusFailed indicates the chain or one of the required dependencies failed.
	ArtifactStatusFailed ArtifactStatus = "failed"
)

// IsTerminal reports whether the status is final.
func (s ArtifactStatus) IsTerminal() bool {
	switch s {
	case ArtifactStatusResolved, ArtifactStatusCached, ArtifactStatusFailed:
		return true
	default:
		return false
	}
}

// NormalizeArtifactStatus converts a string to an ArtifactStatus, defaulting to pending if unknown.
func NormalizeArtifactStatus(s string) ArtifactStatus {
	switch strings.ToLower(s) {
	case string(ArtifactStatusRunning):
		return ArtifactStatusRunning
	case string(ArtifactStatusResolved):
		return ArtifactStatusResolved
	case string(ArtifactStatusCached):
		return ArtifactStatusCached
	case string(ArtifactStatusFailed):
		return ArtifactStatusFailed
	default:
		return ArtifactStatusPending
	}
}
