package transform

import (
	"context"
	"strings"

	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/zerr"
)

// Chain applies an ordered, non-empty sequence of transformations.
type Chain struct {
	transformations []Transformation
}

// NewChain creates a Chain from transformations.
func NewChain(transformations ...Transformation) (*Chain, error) {
	if len(transformations) == 0 {
		return nil, domain.ErrEmptyChain
	}
	for i, t := range transformations {
		if isNil(t) {
			return nil, zerr.With(domain.ErrNilTransformation, "index", i)
		}
	}

	return &Chain{
		transformations: append([]Transformation(nil), transformations...),
	}, nil
}

// Apply folds subject through every transformation. The first failed subject is
// returned without reaching the remaining transformations.
func (c *Chain) Apply(ctx context.Context, subject domain.Subject) domain.Subject {
	current := subject
	for _, t := range c.transformations {
		current = t.Apply(ctx, current)
		if current.IsFailed() {
			return current
		}
	}
	return current
}

// RequiresDependencies reports whether any transformation needs the artifact's dependencies.
func (c *Chain) RequiresDependencies() bool {
	for _, t := range c.transformations {
		if t.RequiresDependencies() {
			return true
		}
	}
	return false
}

// HasCachedResult reports whether the whole chain would be answered from cached results.
// Each transformation is asked about the subject the cached results of the previous
// ones would have produced.
func (c *Chain) HasCachedResult(subject domain.Subject) bool {
	if subject.IsFailed() {
		return true
	}

	last := len(c.transformations) - 1
	current := subject
	for _, t := range c.transformations[:last] {
		next, ok := t.resolveCached(current)
		if !ok {
			return false
		}
		current = next
	}
	return c.transformations[last].HasCachedResult(current)
}

func (c *Chain) resolveCached(subject domain.Subject) (domain.Subject, bool) {
	current := subject
	for _, t := range c.transformations {
		next, ok := t.resolveCached(current)
		if !ok {
			return subject, false
		}
		current = next
	}
	return current, true
}

// VisitSteps calls visitor for every leaf step in pipeline order.
func (c *Chain) VisitSteps(visitor func(*Step)) {
	for _, t := range c.transformations {
		t.VisitSteps(visitor)
	}
}

// Len returns the number of leaf steps.
func (c *Chain) Len() int {
	n := 0
	c.VisitSteps(func(*Step) { n++ })
	return n
}

// String joins the steps with " -> ".
func (c *Chain) String() string {
	parts := make([]string, 0, len(c.transformations))
	for _, t := range c.transformations {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, " -> ")
}
