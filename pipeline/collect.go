package pipeline

import "context"

// The Into* materializers drain a source into a concrete container. Each has
// the Terminal signature, so they can be passed to Run and PipeTo directly:
//
//	words, err := pipeline.Run(ctx, it, pipeline.IntoSlice[string])

// On error every materializer returns a nil container; values pulled
// before the fault are discarded.

// IntoSlice returns all values as a slice.
func IntoSlice[T any](ctx context.Context, it Iterator[T]) ([]T, error) {
	var result []T
	err := drain(ctx, it, func(v T) bool {
		result = append(result, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// IntoSet returns the distinct values in first-seen order.
func IntoSet[T comparable](ctx context.Context, it Iterator[T]) (*Set[T], error) {
	set := NewSet[T]()
	err := drain(ctx, it, func(v T) bool {
		set.Add(v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// IntoMap returns the pairs as a builtin map. Later pairs overwrite
// earlier pairs with the same key.
func IntoMap[K comparable, V any](ctx context.Context, it Iterator[Pair[K, V]]) (map[K]V, error) {
	m := make(map[K]V)
	err := drain(ctx, it, func(p Pair[K, V]) bool {
		m[p.Left] = p.Right
		return true
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// IntoObj returns the pairs as an insertion-ordered OrderedMap. Later pairs
// overwrite the value of earlier pairs with the same key; the key keeps the
// position of its first occurrence.
func IntoObj[K comparable, V any](ctx context.Context, it Iterator[Pair[K, V]]) (*OrderedMap[K, V], error) {
	m := NewOrderedMap[K, V]()
	err := drain(ctx, it, func(p Pair[K, V]) bool {
		m.Put(p.Left, p.Right)
		return true
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
