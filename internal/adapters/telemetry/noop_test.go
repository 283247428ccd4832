package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/morph/internal/adapters/telemetry"
	"go.trai.ch/morph/internal/core/ports"
)

func TestNoOp_Record(t *testing.T) {
	tel := telemetry.NewNoOp()

	ctx, vertex := tel.Record(context.Background(), "lib", ports.WithGroup("resolve"))
	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	n, err := vertex.Stdout().Write([]byte("ignored"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	vertex.Cached()
	vertex.Complete(nil)
	assert.NoError(t, tel.Close())
}
