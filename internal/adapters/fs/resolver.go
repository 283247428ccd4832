package fs

import (
	"path/filepath"
	"slices"

	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/morph/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver implements the InputResolver interface using filepath.Glob.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveInputs expands each pattern relative to root, keeping pattern order.
// Matches of a single pattern are sorted; duplicates across patterns are dropped.
func (r *Resolver) ResolveInputs(inputs []string, root string) ([]string, error) {
	seen := make(map[string]bool)
	result := make([]string, 0, len(inputs))

	for _, input := range inputs {
		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, input)
		}

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInputResolutionFailed.Error()), "path", path)
		}
		if len(matches) == 0 {
			return nil, zerr.With(domain.ErrInputNotFound, "path", path)
		}

		slices.Sort(matches)
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			result = append(result, match)
		}
	}

	return result, nil
}
