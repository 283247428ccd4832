package domain

import "slices"

// Subject is the value flowing through a transformation pipeline: either the ordered
// files of an artifact or the failure that ended its transformation.
//
// A Subject is immutable. Every operation returns a new value, so subjects can be
// shared across goroutines without locking.
type Subject struct {
	displayName string
	files       []string
	failure     error
}

// NewSubject creates the initial subject for an artifact.
func NewSubject(displayName string, files ...string) Subject {
	return Subject{
		displayName: displayName,
		files:       slices.Clone(files),
	}
}

// WithFiles returns a successful subject carrying files under the same display name.
func (s Subject) WithFiles(files []string) Subject {
	return Subject{
		displayName: s.displayName,
		files:       slices.Clone(files),
	}
}

// WithFailure returns a failed subject under the same display name.
// Files are not carried over; a failed subject never exposes them.
func (s Subject) WithFailure(err error) Subject {
	return Subject{
		displayName: s.displayName,
		failure:     err,
	}
}

// IsFailed reports whether the subject carries a failure.
func (s Subject) IsFailed() bool {
	return s.failure != nil
}

// Failure returns the captured failure, or nil.
func (s Subject) Failure() error {
	return s.failure
}

// Files returns a copy of the subject's files. It is empty for failed subjects.
func (s Subject) Files() []string {
	if s.failure != nil {
		return nil
	}
	return slices.Clone(s.files)
}

// DisplayName returns the name used in diagnostics.
func (s Subject) DisplayName() string {
	return s.displayName
}

// String returns the display name.
func (s Subject) String() string {
	return s.displayName
}

// Equal reports whether both subjects have the same display name, the same files in
// the same order, and the same failure value.
func (s Subject) Equal(other Subject) bool {
	if s.displayName != other.displayName {
		return false
	}
	if s.failure != nil || other.failure != nil {
		return s.failure == other.failure
	}
	return slices.Equal(s.files, other.files)
}
