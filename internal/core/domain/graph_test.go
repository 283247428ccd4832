package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/zerr"
)

func artifact(name string, deps ...string) *domain.Artifact {
	return &domain.Artifact{
		Name:         domain.NewInternedString(name),
		Dependencies: domain.NewInternedStrings(deps),
	}
}

func TestGraph_AddArtifact(t *testing.T) {
	g := domain.NewGraph()
	a := artifact("lib")

	require.NoError(t, g.AddArtifact(a))

	err := g.AddArtifact(a)
	require.Error(t, err)
	assert.EqualError(t, err, domain.ErrArtifactAlreadyExists.Error())

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "lib", zErr.Metadata()["artifact"])
	assert.Equal(t, 1, g.ArtifactCount())
}

func TestGraph_GetArtifact(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddArtifact(artifact("app", "lib")))

	got, ok := g.GetArtifact(domain.NewInternedString("app"))
	require.True(t, ok)
	assert.Equal(t, "app", got.Name.String())

	_, ok = g.GetArtifact(domain.NewInternedString("missing"))
	assert.False(t, ok)
}

func TestGraph_Dependents(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddArtifact(artifact("lib")))
	require.NoError(t, g.AddArtifact(artifact("app", "lib")))
	require.NoError(t, g.AddArtifact(artifact("tool", "lib")))

	dependents := g.Dependents(domain.NewInternedString("lib"))
	names := make([]string, 0, len(dependents))
	for _, d := range dependents {
		names = append(names, d.String())
	}
	assert.ElementsMatch(t, []string{"app", "tool"}, names)
}

func TestGraph_Validate_Cycle(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddArtifact(artifact("A", "B")))
	require.NoError(t, g.AddArtifact(artifact("B", "A")))

	err := g.Validate()
	require.Error(t, err)
	assert.EqualError(t, err, domain.ErrCycleDetected.Error())

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "A -> B -> A", zErr.Metadata()["cycle"])
}

func TestGraph_Validate_MissingDependency(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddArtifact(artifact("app", "ghost")))

	err := g.Validate()
	require.Error(t, err)
	assert.EqualError(t, err, domain.ErrMissingDependency.Error())

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "ghost", zErr.Metadata()["dependency"])
}

func TestGraph_Walk(t *testing.T) {
	g := domain.NewGraph()
	// A -> B -> C
	require.NoError(t, g.AddArtifact(artifact("A", "B")))
	require.NoError(t, g.AddArtifact(artifact("B", "C")))
	require.NoError(t, g.AddArtifact(artifact("C")))

	require.NoError(t, g.Validate())

	executed := make([]string, 0, 3)
	for a := range g.Walk() {
		executed = append(executed, a.Name.String())
	}
	assert.Equal(t, []string{"C", "B", "A"}, executed)
}

func TestGraph_Walk_StableOrder(t *testing.T) {
	for range 5 {
		g := domain.NewGraph()
		require.NoError(t, g.AddArtifact(artifact("zeta")))
		require.NoError(t, g.AddArtifact(artifact("alpha")))
		require.NoError(t, g.AddArtifact(artifact("mid", "zeta")))
		require.NoError(t, g.Validate())

		var executed []string
		for a := range g.Walk() {
			executed = append(executed, a.Name.String())
		}
		assert.Equal(t, []string{"alpha", "zeta", "mid"}, executed)
	}
}

func TestGraph_Root(t *testing.T) {
	g := domain.NewGraph()
	assert.Empty(t, g.Root())
	g.SetRoot("/work")
	assert.Equal(t, "/work", g.Root())
}
