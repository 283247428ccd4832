// Package scheduler resolves the artifacts of a pipeline by folding them through their
// transformation chains.
package scheduler

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/morph/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scheduler resolves planned artifacts with bounded parallelism.
//
// Artifacts whose chain requires dependencies start once all of their dependencies
// reached a terminal subject; every other artifact starts immediately.
type Scheduler struct {
	planner   *Planner
	logger    ports.Logger
	telemetry ports.Telemetry

	mu     sync.RWMutex
	status map[string]domain.ArtifactStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(planner *Planner, logger ports.Logger, telemetry ports.Telemetry) *Scheduler {
	return &Scheduler{
		planner:   planner,
		logger:    logger,
		telemetry: telemetry,
		status:    make(map[string]domain.ArtifactStatus),
	}
}

// Run resolves targets and their dependencies and returns the terminal subject of every
// resolved artifact. Transform failures are reported in the subjects; the error is
// non-nil only when planning fails or ctx is cancelled.
func (s *Scheduler) Run(
	ctx context.Context,
	pipeline *domain.Pipeline,
	targets []string,
	parallelism int,
) (map[string]domain.Subject, error) {
	plan, err := s.planner.Plan(pipeline, targets)
	if err != nil {
		return nil, err
	}
	s.emitPlan(plan)
	return s.Execute(ctx, plan, parallelism)
}

// Execute resolves every entry of plan.
func (s *Scheduler) Execute(ctx context.Context, plan *Plan, parallelism int) (map[string]domain.Subject, error) {
	if parallelism < 1 {
		parallelism = 1
	}

	state := s.newRunState(ctx, plan, parallelism)

	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			return state.results, state.ctx.Err()
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
			// No new work is scheduled; wait for the folds already running.
			state.handleResult(<-state.resultsCh)
		}
	}

	if err := state.ctx.Err(); err != nil {
		return state.results, err
	}
	return state.results, nil
}

// Status returns the status of the named artifact in the current or last run.
func (s *Scheduler) Status(name string) domain.ArtifactStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if status, ok := s.status[name]; ok {
		return status
	}
	return domain.ArtifactStatusPending
}

// Statuses returns a copy of all artifact statuses.
func (s *Scheduler) Statuses() map[string]domain.ArtifactStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.status)
}

func (s *Scheduler) updateStatus(name string, status domain.ArtifactStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[name] = status
}

// emitPlan logs the steps of every planned artifact and whether it is up to date.
func (s *Scheduler) emitPlan(plan *Plan) {
	for _, entry := range plan.Entries {
		if entry.Transformation == nil {
			s.logger.Info(fmt.Sprintf("%s: no transformation", entry.Artifact.Name))
			continue
		}
		state := "needs work"
		if entry.UpToDate {
			state = "up to date"
		}
		s.logger.Info(fmt.Sprintf("%s: %s (%s)", entry.Artifact.Name, entry.Transformation, state))
	}
}

type result struct {
	name    domain.InternedString
	subject domain.Subject
}

type runState struct {
	entries     map[domain.InternedString]Entry
	inDegree    map[domain.InternedString]int
	dependents  map[domain.InternedString][]domain.InternedString
	ready       []domain.InternedString
	active      int
	resultsCh   chan result
	results     map[string]domain.Subject
	ctx         context.Context
	parallelism int
	s           *Scheduler
}

func (s *Scheduler) newRunState(ctx context.Context, plan *Plan, parallelism int) *runState {
	state := &runState{
		entries:     make(map[domain.InternedString]Entry, len(plan.Entries)),
		inDegree:    make(map[domain.InternedString]int, len(plan.Entries)),
		dependents:  make(map[domain.InternedString][]domain.InternedString),
		resultsCh:   make(chan result, parallelism),
		results:     make(map[string]domain.Subject, len(plan.Entries)),
		ctx:         ctx,
		parallelism: parallelism,
		s:           s,
	}

	for _, entry := range plan.Entries {
		name := entry.Artifact.Name
		state.entries[name] = entry
		s.updateStatus(name.String(), domain.ArtifactStatusPending)

		if !entry.RequiresDependencies() {
			state.ready = append(state.ready, name)
			continue
		}
		state.inDegree[name] = len(entry.Artifact.Dependencies)
		for _, dep := range entry.Artifact.Dependencies {
			state.dependents[dep] = append(state.dependents[dep], name)
		}
		if len(entry.Artifact.Dependencies) == 0 {
			state.ready = append(state.ready, name)
		}
	}

	return state
}

func (state *runState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		name := state.ready[0]
		state.ready = state.ready[1:]
		entry := state.entries[name]

		if failure := state.dependencyFailure(entry); failure != nil {
			state.complete(name, entry.Subject().WithFailure(failure))
			continue
		}

		state.active++
		state.s.updateStatus(name.String(), domain.ArtifactStatusRunning)

		go func(e Entry) {
			state.resultsCh <- result{name: e.Artifact.Name, subject: state.resolve(state.ctx, e)}
		}(entry)
	}
}

// resolve folds the entry's initial subject through its transformation.
func (state *runState) resolve(ctx context.Context, entry Entry) domain.Subject {
	subject := entry.Subject()
	if entry.Transformation == nil {
		return subject
	}

	ctx, vertex := state.s.telemetry.Record(ctx, entry.Artifact.Name.String(), ports.WithGroup("artifacts"))
	subject = entry.Transformation.Apply(ctx, subject)
	if entry.UpToDate && !subject.IsFailed() {
		vertex.Cached()
	}
	vertex.Complete(subject.Failure())
	return subject
}

// dependencyFailure returns the failure recorded for entry when one of the dependencies
// it waits for failed.
func (state *runState) dependencyFailure(entry Entry) error {
	if !entry.RequiresDependencies() {
		return nil
	}
	for _, dep := range entry.Artifact.Dependencies {
		subject, ok := state.results[dep.String()]
		if !ok || !subject.IsFailed() {
			continue
		}
		err := zerr.Wrap(subject.Failure(), domain.ErrDependencyFailed.Error())
		err = zerr.With(err, "artifact", entry.Artifact.Name.String())
		return zerr.With(err, "dependency", dep.String())
	}
	return nil
}

func (state *runState) handleResult(res result) {
	state.active--
	state.complete(res.name, res.subject)
}

// complete records the terminal subject of name and releases the artifacts waiting on it.
func (state *runState) complete(name domain.InternedString, subject domain.Subject) {
	state.results[name.String()] = subject

	switch {
	case subject.IsFailed():
		state.s.updateStatus(name.String(), domain.ArtifactStatusFailed)
	case state.entries[name].UpToDate:
		state.s.updateStatus(name.String(), domain.ArtifactStatusCached)
	default:
		state.s.updateStatus(name.String(), domain.ArtifactStatusResolved)
	}

	for _, dependent := range state.dependents[name] {
		state.inDegree[dependent]--
		if state.inDegree[dependent] == 0 {
			state.ready = append(state.ready, dependent)
		}
	}
}
