package pipeline

import (
	"context"

	"github.com/0x5a17ed/itkit/ittuple"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// Pair is a two-element tuple. OrderedMap entries, group buckets and zipped
// values are all Pairs.
type Pair[L, R any] = ittuple.T2[L, R]

// NewPair returns a Pair holding left and right.
func NewPair[L, R any](left L, right R) Pair[L, R] {
	return ittuple.NewT2(left, right)
}

// OrderedMap is a key/value container that remembers insertion order.
// Updating an existing key keeps its original position.
type OrderedMap[K comparable, V any] struct {
	m *linkedhashmap.Map
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{m: linkedhashmap.New()}
}

// Put stores value under key.
func (m *OrderedMap[K, V]) Put(key K, value V) {
	m.m.Put(key, value)
}

// Get returns the value stored under key.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, found := m.m.Get(key)
	if !found {
		var zero V
		return zero, false
	}
	return v.(V), true
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int { return m.m.Size() }

// Keys returns the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	raw := m.m.Keys()
	keys := make([]K, len(raw))
	for i, k := range raw {
		keys[i] = k.(K)
	}
	return keys
}

// Entries returns the entries in insertion order.
func (m *OrderedMap[K, V]) Entries() []Pair[K, V] {
	out := make([]Pair[K, V], 0, m.m.Size())
	it := m.m.Iterator()
	for it.Next() {
		out = append(out, NewPair(it.Key().(K), it.Value().(V)))
	}
	return out
}

// Iter returns an iterator over the entries in insertion order.
func (m *OrderedMap[K, V]) Iter() Iterator[Pair[K, V]] {
	if m == nil {
		return Empty[Pair[K, V]]()
	}
	return &entryIter[K, V]{it: m.m.Iterator()}
}

type entryIter[K comparable, V any] struct {
	it linkedhashmap.Iterator
}

func (it *entryIter[K, V]) Next(_ context.Context) (Pair[K, V], bool, error) {
	if !it.it.Next() {
		return Pair[K, V]{}, false, nil
	}
	return NewPair(it.it.Key().(K), it.it.Value().(V)), true, nil
}

func (it *entryIter[K, V]) Close() error { return nil }

// Set is a collection of distinct values that remembers insertion order.
type Set[T comparable] struct {
	s *linkedhashset.Set
}

// NewSet creates a Set holding values.
func NewSet[T comparable](values ...T) *Set[T] {
	s := &Set[T]{s: linkedhashset.New()}
	s.Add(values...)
	return s
}

// Add inserts values not yet present.
func (s *Set[T]) Add(values ...T) {
	for _, v := range values {
		s.s.Add(v)
	}
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool { return s.s.Contains(v) }

// Len returns the number of values.
func (s *Set[T]) Len() int { return s.s.Size() }

// Values returns the values in insertion order.
func (s *Set[T]) Values() []T {
	raw := s.s.Values()
	out := make([]T, len(raw))
	for i, v := range raw {
		out[i] = v.(T)
	}
	return out
}

// Iter returns an iterator over the values in insertion order.
func (s *Set[T]) Iter() Iterator[T] {
	if s == nil {
		return Empty[T]()
	}
	return &setIter[T]{it: s.s.Iterator()}
}

type setIter[T comparable] struct {
	it linkedhashset.Iterator
}

func (it *setIter[T]) Next(_ context.Context) (T, bool, error) {
	if !it.it.Next() {
		var zero T
		return zero, false, nil
	}
	return it.it.Value().(T), true, nil
}

func (it *setIter[T]) Close() error { return nil }
