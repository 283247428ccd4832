package convention

import (
	"fmt"
	"sync"

	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/zerr"
)

// Provider computes the conventional value of a property.
type Provider func() (any, error)

type property struct {
	explicit func() (any, bool)
	resolve  func() (any, error)
}

// Mapping binds declared properties to conventional value providers.
//
// A property resolves to its explicit value when one is set. Otherwise the mapped
// provider is invoked at most once and its result is reused by later lookups.
type Mapping struct {
	mu    sync.RWMutex
	props map[string]*property
}

// NewMapping creates an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{props: make(map[string]*property)}
}

// Declare registers name as a property whose explicit value is read from opt.
// opt is read at resolve time, so later assignments to it are observed.
func Declare[T any](m *Mapping, name string, opt *Option[T]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.lookupOrCreate(name)
	p.explicit = func() (any, bool) {
		v, ok := opt.Get()
		return v, ok
	}
}

// Map sets the provider used when name has no explicit value.
// It fails with ErrUnknownProperty when name was never declared.
func (m *Mapping) Map(name string, provider Provider) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.props[name]
	if !ok {
		return zerr.With(domain.ErrUnknownProperty, "property", name)
	}
	p.resolve = sync.OnceValues(provider)
	return nil
}

// Resolve returns the explicit value of name, or its conventional value.
// Properties with neither resolve to nil.
func (m *Mapping) Resolve(name string) (any, error) {
	m.mu.RLock()
	p, ok := m.props[name]
	var explicit func() (any, bool)
	var resolve func() (any, error)
	if ok {
		explicit, resolve = p.explicit, p.resolve
	}
	m.mu.RUnlock()
	if !ok {
		return nil, zerr.With(domain.ErrUnknownProperty, "property", name)
	}

	if explicit != nil {
		if v, set := explicit(); set {
			return v, nil
		}
	}
	if resolve == nil {
		return nil, nil
	}

	v, err := resolve()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConventionResolveFailed.Error()), "property", name)
	}
	return v, nil
}

// Lookup resolves name and asserts the value to T.
// An unresolved property yields the zero value of T.
func Lookup[T any](m *Mapping, name string) (T, error) {
	var zero T

	v, err := m.Resolve(name)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}

	typed, ok := v.(T)
	if !ok {
		err := zerr.With(domain.ErrConventionTypeMismatch, "property", name)
		return zero, zerr.With(err, "type", fmt.Sprintf("%T", v))
	}
	return typed, nil
}

func (m *Mapping) lookupOrCreate(name string) *property {
	p, ok := m.props[name]
	if !ok {
		p = &property{}
		m.props[name] = p
	}
	return p
}
