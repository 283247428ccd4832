// Package transformers provides the built-in transformer kinds and the registry that
// builds them from pipeline definitions.
package transformers

import (
	"maps"
	"slices"
	"strconv"

	"go.trai.ch/morph/internal/adapters/fs"
	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/morph/internal/core/ports"
	"go.trai.ch/zerr"
)

// Built-in transformer kinds.
const (
	KindCommand = "command"
	KindUnzip   = "unzip"
	KindCopy    = "copy"
)

// Constructor builds a transformer of one kind.
type Constructor func(spec domain.TransformSpec) (ports.Transformer, error)

var _ ports.TransformerFactory = (*Registry)(nil)

// Registry maps transformer kinds to constructors.
type Registry struct {
	constructors map[string]Constructor
}

// NewRegistry creates a Registry holding the built-in kinds.
func NewRegistry(logger ports.Logger, walker *fs.Walker) *Registry {
	r := &Registry{constructors: make(map[string]Constructor)}
	r.Register(KindCommand, func(spec domain.TransformSpec) (ports.Transformer, error) {
		return NewCommand(spec, logger, walker)
	})
	r.Register(KindUnzip, func(spec domain.TransformSpec) (ports.Transformer, error) {
		return NewUnzip(spec), nil
	})
	r.Register(KindCopy, func(spec domain.TransformSpec) (ports.Transformer, error) {
		return NewCopy(spec), nil
	})
	return r
}

// Register adds or replaces the constructor for kind.
func (r *Registry) Register(kind string, constructor Constructor) {
	r.constructors[kind] = constructor
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	return slices.Sorted(maps.Keys(r.constructors))
}

// Build returns the transformer described by spec.
func (r *Registry) Build(spec domain.TransformSpec) (ports.Transformer, error) {
	constructor, ok := r.constructors[spec.Kind]
	if !ok {
		err := zerr.With(domain.ErrUnknownTransformKind, "transform", spec.Name)
		return nil, zerr.With(err, "kind", spec.Kind)
	}
	return constructor(spec)
}

// Fingerprint digests the configuration of spec that affects its outputs.
// Each list is length-prefixed so that adjacent fields cannot be confused.
func Fingerprint(spec domain.TransformSpec) domain.Fingerprint {
	fields := []string{spec.Kind}

	fields = append(fields, strconv.Itoa(len(spec.Command)))
	fields = append(fields, spec.Command...)

	keys := slices.Sorted(maps.Keys(spec.Environment))
	fields = append(fields, strconv.Itoa(len(keys)))
	for _, k := range keys {
		fields = append(fields, k+"="+spec.Environment[k])
	}

	fields = append(fields, strconv.Itoa(len(spec.Outputs)))
	fields = append(fields, spec.Outputs...)

	return domain.NewFingerprint(fields...)
}

// identityOf returns the identity of the transformer built from spec.
func identityOf(spec domain.TransformSpec) domain.TransformIdentity {
	return domain.NewTransformIdentity(spec.Name, Fingerprint(spec))
}
