package transform

import (
	"context"
	"fmt"

	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/morph/internal/core/ports"
	"go.trai.ch/zerr"
)

// Step applies one transformer to every file of a subject through an executor.
//
// Two steps are equal when their transformers share an identity; the executor and the
// dependency requirement do not take part in equality.
type Step struct {
	transformer          ports.Transformer
	executor             ports.TransformExecutor
	requiresDependencies bool
	identity             domain.TransformIdentity
	logger               ports.Logger
}

// StepOption configures a Step.
type StepOption func(*Step)

// WithLogger logs every subject the step transforms.
func WithLogger(logger ports.Logger) StepOption {
	return func(s *Step) {
		s.logger = logger
	}
}

// NewStep creates a Step.
func NewStep(
	transformer ports.Transformer,
	executor ports.TransformExecutor,
	requiresDependencies bool,
	opts ...StepOption,
) (*Step, error) {
	if transformer == nil {
		return nil, domain.ErrNilTransformer
	}
	if executor == nil {
		return nil, domain.ErrNilExecutor
	}

	s := &Step{
		transformer:          transformer,
		executor:             executor,
		requiresDependencies: requiresDependencies,
		identity:             transformer.Identity(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Apply invokes the transformer for each file of subject in order and concatenates the
// outputs. The first failure stops the step; later files are not invoked.
func (s *Step) Apply(ctx context.Context, subject domain.Subject) domain.Subject {
	if subject.IsFailed() {
		return subject
	}

	if s.logger != nil {
		s.logger.Info(fmt.Sprintf("Transforming %s with %s", subject, s.identity.DisplayName))
	}

	var outputs []string
	for _, file := range subject.Files() {
		result, err := s.executor.Invoke(ctx, s.transformer, file, subject)
		if err != nil {
			return subject.WithFailure(s.annotate(err, file))
		}
		outputs = append(outputs, result...)
	}
	return subject.WithFiles(outputs)
}

// annotate attaches the step and file to err while keeping err's message and identity.
func (s *Step) annotate(err error, file string) error {
	annotated := zerr.With(zerr.Wrap(err, ""), "transformer", s.identity.String())
	return zerr.With(annotated, "file", file)
}

// RequiresDependencies reports whether the step needs the artifact's dependencies.
func (s *Step) RequiresDependencies() bool {
	return s.requiresDependencies
}

// HasCachedResult reports whether the executor holds a result for every file of subject.
// A failed subject is trivially cached.
func (s *Step) HasCachedResult(subject domain.Subject) bool {
	if subject.IsFailed() {
		return true
	}
	for _, file := range subject.Files() {
		if !s.executor.HasCachedResult(file, s.transformer) {
			return false
		}
	}
	return true
}

func (s *Step) resolveCached(subject domain.Subject) (domain.Subject, bool) {
	if subject.IsFailed() {
		return subject, true
	}

	var outputs []string
	for _, file := range subject.Files() {
		result, ok := s.executor.CachedResult(file, s.transformer)
		if !ok {
			return subject, false
		}
		outputs = append(outputs, result...)
	}
	return subject.WithFiles(outputs), true
}

// VisitSteps calls visitor with s.
func (s *Step) VisitSteps(visitor func(*Step)) {
	visitor(s)
}

// Key returns the identity of the step, usable as a map key.
func (s *Step) Key() domain.TransformIdentity {
	return s.identity
}

// Equal reports whether both steps apply the same transformation.
func (s *Step) Equal(other *Step) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.identity == other.identity
}

// DisplayName returns the transformer's display name.
func (s *Step) DisplayName() string {
	return s.identity.DisplayName
}

// String returns "<displayName>@<fingerprint>".
func (s *Step) String() string {
	return s.identity.String()
}
