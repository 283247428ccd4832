// Package memo provides a concurrency-safe, bounded result cache with at-most-one
// in-flight computation per key.
package memo

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// DefaultCapacity is the number of results kept when no capacity is configured.
const DefaultCapacity = 4096

// Memo caches successful computations by key.
//
// Concurrent GetOrCompute calls for the same key share one computation. Failed
// computations are returned to every waiting caller but are not retained.
type Memo[V any] struct {
	cache *lru.Cache[string, V]
	group singleflight.Group
}

// New creates a Memo holding at most capacity results.
func New[V any](capacity int) (*Memo[V], error) {
	cache, err := lru.New[string, V](capacity)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrMemoCreateFailed.Error()), "capacity", capacity)
	}
	return &Memo[V]{cache: cache}, nil
}

// GetOrCompute returns the cached value for key, computing it with fn if necessary.
func (m *Memo[V]) GetOrCompute(key string, fn func() (V, error)) (V, error) {
	if v, ok := m.cache.Get(key); ok {
		return v, nil
	}

	res, err, _ := m.group.Do(key, func() (any, error) {
		// Another caller may have completed the computation between our check and Do.
		if v, ok := m.cache.Get(key); ok {
			return v, nil
		}

		v, err := fn()
		if err != nil {
			return nil, err
		}
		m.cache.Add(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	v, _ := res.(V)
	return v, nil
}

// Get returns the cached value for key without computing it.
func (m *Memo[V]) Get(key string) (V, bool) {
	return m.cache.Get(key)
}

// Len returns the number of cached values.
func (m *Memo[V]) Len() int {
	return m.cache.Len()
}
