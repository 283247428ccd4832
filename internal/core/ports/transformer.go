package ports

import (
	"context"

	"go.trai.ch/morph/internal/core/domain"
)

// Transformer converts one input file into zero or more output files.
//
//go:generate go run go.uber.org/mock/mockgen -source=transformer.go -destination=mocks/mock_transformer.go -package=mocks
type Transformer interface {
	// Identity returns the stable identity used for equality and cache keys.
	Identity() domain.TransformIdentity

	// Transform produces the outputs for input. Outputs are written below workspace,
	// which is an empty directory owned by this invocation.
	Transform(ctx context.Context, input, workspace string) ([]string, error)
}

// TransformerFactory builds transformers from their declarative definitions.
type TransformerFactory interface {
	// Build returns the transformer described by spec.
	Build(spec domain.TransformSpec) (Transformer, error)
}
