// Package convention resolves configuration values that fall back to conventional defaults
// when they were not set explicitly.
package convention

import "gopkg.in/yaml.v3"

// Option is an explicitly optional value. The zero value is unset.
type Option[T any] struct {
	value T
	set   bool
}

// Some returns a set Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, set: true}
}

// None returns an unset Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it was set.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the value was set explicitly.
func (o Option[T]) IsSet() bool {
	return o.set
}

// OrElse returns the value when set, fallback otherwise.
func (o Option[T]) OrElse(fallback T) T {
	if o.set {
		return o.value
	}
	return fallback
}

// UnmarshalYAML implements yaml.Unmarshaler. A present key marks the option as set,
// an explicit null leaves it unset.
func (o *Option[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*o = None[T]()
		return nil
	}
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
