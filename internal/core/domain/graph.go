// Package domain contains the core domain models of the artifact transformation pipeline.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph represents a dependency graph of artifacts.
type Graph struct {
	artifacts      map[InternedString]Artifact
	dependents     map[InternedString][]InternedString
	executionOrder []InternedString
	root           string
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		artifacts:  make(map[InternedString]Artifact),
		dependents: make(map[InternedString][]InternedString),
	}
}

// SetRoot sets the directory artifact files are resolved against.
func (g *Graph) SetRoot(root string) {
	g.root = root
}

// Root returns the directory artifact files are resolved against.
func (g *Graph) Root() string {
	return g.root
}

// AddArtifact adds an artifact to the graph.
// It returns an error if an artifact with the same name already exists.
func (g *Graph) AddArtifact(a *Artifact) error {
	if _, exists := g.artifacts[a.Name]; exists {
		return zerr.With(ErrArtifactAlreadyExists, "artifact", a.Name.String())
	}
	g.artifacts[a.Name] = *a
	for _, dep := range a.Dependencies {
		g.dependents[dep] = append(g.dependents[dep], a.Name)
	}
	return nil
}

// GetArtifact returns the artifact with the given name.
func (g *Graph) GetArtifact(name InternedString) (Artifact, bool) {
	a, ok := g.artifacts[name]
	return a, ok
}

// ArtifactCount returns the number of artifacts in the graph.
func (g *Graph) ArtifactCount() int {
	return len(g.artifacts)
}

// Dependents returns the artifacts that declare name as a dependency.
func (g *Graph) Dependents(name InternedString) []InternedString {
	return g.dependents[name]
}

// Validate checks for missing dependencies and cycles using a topological sort.
// It populates the execution order used by Walk.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.artifacts))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		artifact, exists := g.artifacts[u]
		if !exists {
			return zerr.With(ErrMissingDependency, "dependency", u.String())
		}

		for _, dep := range artifact.Dependencies {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	// Visit in name order so that the walk order is stable between runs.
	names := make([]InternedString, 0, len(g.artifacts))
	for name := range g.artifacts {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b InternedString) int {
		return strings.Compare(a.String(), b.String())
	})

	for _, name := range names {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	var cyclePath strings.Builder
	startIdx := slices.Index(path, dep)
	for i := startIdx; i < len(path); i++ {
		cyclePath.WriteString(path[i].String())
		cyclePath.WriteString(" -> ")
	}
	cyclePath.WriteString(dep.String())
	return zerr.With(ErrCycleDetected, "cycle", cyclePath.String())
}

// Walk returns an iterator that yields artifacts in dependency order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Artifact] {
	return func(yield func(Artifact) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.artifacts[name]) {
				return
			}
		}
	}
}
