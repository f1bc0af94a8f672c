package pipeline

import (
	"cmp"
	"context"
	"slices"
)

// Sort drains the source on the first pull and yields its values in
// ascending order.
func Sort[T cmp.Ordered]() Operator[T, T] {
	return SortFunc(Ascending[T])
}

// SortFunc drains the source on the first pull and yields its values
// ordered by compare. Equal values keep their encounter order.
func SortFunc[T any](compare func(a, b T) int) Operator[T, T] {
	return func(src Iterator[T]) Iterator[T] {
		return &bufferedIter[T, T]{source: From(src), fill: func(ctx context.Context, it Iterator[T]) ([]T, error) {
			items, err := IntoSlice(ctx, it)
			if err != nil {
				return nil, err
			}
			slices.SortStableFunc(items, compare)
			return items, nil
		}}
	}
}

// SortBy orders values by the key extracted with key, ascending.
func SortBy[T any, K cmp.Ordered](key func(T) K) Operator[T, T] {
	return SortByFunc(key, Ascending[K])
}

// SortByFunc orders values by comparing the keys extracted with key.
func SortByFunc[T, K any](key func(T) K, compare func(a, b K) int) Operator[T, T] {
	return SortFunc(func(a, b T) int { return compare(key(a), key(b)) })
}

// Ascending compares numbers numerically and strings lexically.
func Ascending[T cmp.Ordered](a, b T) int { return cmp.Compare(a, b) }

// Descending is the reverse of Ascending.
func Descending[T cmp.Ordered](a, b T) int { return cmp.Compare(b, a) }

// ByLeft compares pairs by their left element.
func ByLeft[L cmp.Ordered, R any](a, b Pair[L, R]) int { return cmp.Compare(a.Left, b.Left) }

// ByRight compares pairs by their right element.
func ByRight[L any, R cmp.Ordered](a, b Pair[L, R]) int { return cmp.Compare(a.Right, b.Right) }

// bufferedIter drains its source on the first pull, turning it into a
// slice with fill, and then yields the buffered values.
type bufferedIter[I, O any] struct {
	source Iterator[I]
	fill   func(context.Context, Iterator[I]) ([]O, error)
	items  []O
	filled bool
}

func (it *bufferedIter[I, O]) Next(ctx context.Context) (O, bool, error) {
	var zero O
	if !it.filled {
		it.filled = true
		items, err := it.fill(ctx, it.source)
		if err != nil {
			return zero, false, err
		}
		it.items = items
	}
	if len(it.items) == 0 {
		return zero, false, nil
	}
	val := it.items[0]
	it.items = it.items[1:]
	return val, true, nil
}

func (it *bufferedIter[I, O]) Close() error {
	it.filled, it.items = true, nil
	return it.source.Close()
}
