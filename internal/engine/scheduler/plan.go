package scheduler

import (
	"slices"

	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/morph/internal/core/ports"
	"go.trai.ch/morph/internal/engine/transform"
	"go.trai.ch/zerr"
)

// AllTarget selects every artifact of the pipeline.
const AllTarget = "all"

// Entry is one artifact selected for resolution.
type Entry struct {
	Artifact domain.Artifact
	// Transformation is nil for artifacts without a chain; their files pass through.
	Transformation transform.Transformation
	// UpToDate reports whether the transformation would be answered entirely from cache.
	UpToDate bool
}

// Subject returns the initial subject of the entry's artifact.
func (e Entry) Subject() domain.Subject {
	return domain.NewSubject(e.Artifact.Name.String(), e.Artifact.Files...)
}

// RequiresDependencies reports whether the entry waits for its dependencies.
func (e Entry) RequiresDependencies() bool {
	return e.Transformation != nil && e.Transformation.RequiresDependencies()
}

// Plan is the ordered set of artifacts a run resolves.
type Plan struct {
	// Entries are in dependency order.
	Entries []Entry
}

// Planner builds plans from pipeline definitions.
type Planner struct {
	factory  ports.TransformerFactory
	executor ports.TransformExecutor
	logger   ports.Logger
}

// NewPlanner creates a Planner building steps with factory and executor.
func NewPlanner(factory ports.TransformerFactory, executor ports.TransformExecutor, logger ports.Logger) *Planner {
	return &Planner{
		factory:  factory,
		executor: executor,
		logger:   logger,
	}
}

// Plan selects targets and their transitive dependencies and builds their chains.
// No targets, or the "all" target, select every artifact.
func (p *Planner) Plan(pipeline *domain.Pipeline, targets []string) (*Plan, error) {
	if err := pipeline.Graph.Validate(); err != nil {
		return nil, err
	}

	selected, err := selectArtifacts(pipeline.Graph, targets)
	if err != nil {
		return nil, err
	}

	steps := make(map[string]*transform.Step)
	chains := make(map[string]transform.Transformation)

	plan := &Plan{}
	for artifact := range pipeline.Graph.Walk() {
		if _, ok := selected[artifact.Name]; !ok {
			continue
		}

		entry := Entry{Artifact: artifact}
		if !artifact.Chain.IsZero() {
			chain, err := p.chain(pipeline, artifact.Chain.String(), steps, chains)
			if err != nil {
				return nil, zerr.With(err, "artifact", artifact.Name.String())
			}
			entry.Transformation = chain
			entry.UpToDate = chain.HasCachedResult(entry.Subject())
		}
		plan.Entries = append(plan.Entries, entry)
	}

	return plan, nil
}

// chain returns the transformation for the named chain, building its steps once per plan.
func (p *Planner) chain(
	pipeline *domain.Pipeline,
	name string,
	steps map[string]*transform.Step,
	chains map[string]transform.Transformation,
) (transform.Transformation, error) {
	if chain, ok := chains[name]; ok {
		return chain, nil
	}

	transformNames, ok := pipeline.Chains[name]
	if !ok {
		return nil, zerr.With(domain.ErrChainNotFound, "chain", name)
	}

	parts := make([]transform.Transformation, 0, len(transformNames))
	for _, transformName := range transformNames {
		step, err := p.step(pipeline, transformName, steps)
		if err != nil {
			return nil, zerr.With(err, "chain", name)
		}
		parts = append(parts, step)
	}

	chain, err := transform.Compose(parts...)
	if err != nil {
		return nil, zerr.With(err, "chain", name)
	}
	chains[name] = chain
	return chain, nil
}

func (p *Planner) step(pipeline *domain.Pipeline, name string, steps map[string]*transform.Step) (*transform.Step, error) {
	if step, ok := steps[name]; ok {
		return step, nil
	}

	spec, ok := pipeline.Transforms[name]
	if !ok {
		return nil, zerr.With(domain.ErrTransformNotFound, "transform", name)
	}

	transformer, err := p.factory.Build(spec)
	if err != nil {
		return nil, err
	}

	step, err := transform.NewStep(transformer, p.executor, spec.RequiresDependencies, transform.WithLogger(p.logger))
	if err != nil {
		return nil, err
	}
	steps[name] = step
	return step, nil
}

// selectArtifacts returns the targets and their transitive dependencies.
func selectArtifacts(graph *domain.Graph, targets []string) (map[domain.InternedString]struct{}, error) {
	selected := make(map[domain.InternedString]struct{})

	if len(targets) == 0 || slices.Contains(targets, AllTarget) {
		for artifact := range graph.Walk() {
			selected[artifact.Name] = struct{}{}
		}
		return selected, nil
	}

	var visit func(name domain.InternedString)
	visit = func(name domain.InternedString) {
		if _, ok := selected[name]; ok {
			return
		}
		selected[name] = struct{}{}
		artifact, _ := graph.GetArtifact(name)
		for _, dep := range artifact.Dependencies {
			visit(dep)
		}
	}

	for _, target := range targets {
		name := domain.NewInternedString(target)
		if _, ok := graph.GetArtifact(name); !ok {
			return nil, zerr.With(domain.ErrArtifactNotFound, "artifact", target)
		}
		visit(name)
	}
	return selected, nil
}
