// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/morph/internal/core/domain"
)

// TransformExecutor runs a transformer against a single input file and memoizes the outcome.
//
// Implementations must be safe for concurrent use. Concurrent invocations for the same
// (file, transformer identity) pair observe a single computation. That computation runs
// under the context of the caller that started it, so cancelling that context fails every
// caller waiting on it; a later call recomputes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type TransformExecutor interface {
	// Invoke applies the transformer to file and returns the produced files in order.
	// The subject is the artifact being transformed and is used for diagnostics only.
	Invoke(ctx context.Context, transformer Transformer, file string, subject domain.Subject) ([]string, error)

	// HasCachedResult reports whether a successful result for (file, transformer) is
	// already available without running the transformer.
	HasCachedResult(file string, transformer Transformer) bool

	// CachedResult returns the memoized result for (file, transformer) without running
	// the transformer. The boolean is false when no successful result is available.
	CachedResult(file string, transformer Transformer) ([]string, bool)
}
