// Package transform implements transformation steps and chains that fold an artifact
// subject through a sequence of cacheable transformers.
package transform

import (
	"context"

	"go.trai.ch/morph/internal/core/domain"
)

// Transformation is a single step or an ordered chain of steps.
type Transformation interface {
	// Apply transforms subject and returns the resulting subject. It never returns an
	// error: failures are captured in the returned subject.
	Apply(ctx context.Context, subject domain.Subject) domain.Subject

	// RequiresDependencies reports whether the transformation needs the artifact's
	// dependencies to be resolved before it runs.
	RequiresDependencies() bool

	// HasCachedResult reports whether applying the transformation to subject would be
	// answered entirely from previously computed results. It never runs a transformer.
	HasCachedResult(subject domain.Subject) bool

	// VisitSteps calls visitor once per leaf step in pipeline order.
	VisitSteps(visitor func(*Step))

	String() string

	// resolveCached returns the subject the transformation would produce using only
	// cached results, and false when any result is missing.
	resolveCached(subject domain.Subject) (domain.Subject, bool)
}

// Compose returns the transformation applying transformations in order.
// A single transformation is returned as is.
func Compose(transformations ...Transformation) (Transformation, error) {
	if len(transformations) == 1 && !isNil(transformations[0]) {
		return transformations[0], nil
	}
	return NewChain(transformations...)
}

func isNil(t Transformation) bool {
	switch v := t.(type) {
	case nil:
		return true
	case *Step:
		return v == nil
	case *Chain:
		return v == nil
	default:
		return false
	}
}
