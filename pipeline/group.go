package pipeline

import "context"

// GroupBy drains the source on the first pull and buckets values by key.
// Buckets are yielded in the order their key was first seen; values keep
// encounter order within a bucket.
func GroupBy[T any, K comparable](key func(T) K) Operator[T, Pair[K, []T]] {
	return func(src Iterator[T]) Iterator[Pair[K, []T]] {
		return &bufferedIter[T, Pair[K, []T]]{
			source: From(src),
			fill: func(ctx context.Context, it Iterator[T]) ([]Pair[K, []T], error) {
				groups := NewOrderedMap[K, []T]()
				err := drain(ctx, it, func(v T) bool {
					k := key(v)
					bucket, _ := groups.Get(k)
					groups.Put(k, append(bucket, v))
					return true
				})
				if err != nil {
					return nil, err
				}
				return groups.Entries(), nil
			},
		}
	}
}

// Frequencies drains the source on the first pull and yields each distinct
// value with the number of times it occurred, in first-seen order.
func Frequencies[T comparable]() Operator[T, Pair[T, int]] {
	return func(src Iterator[T]) Iterator[Pair[T, int]] {
		return &bufferedIter[T, Pair[T, int]]{
			source: From(src),
			fill: func(ctx context.Context, it Iterator[T]) ([]Pair[T, int], error) {
				counts := NewOrderedMap[T, int]()
				err := drain(ctx, it, func(v T) bool {
					n, _ := counts.Get(v)
					counts.Put(v, n+1)
					return true
				})
				if err != nil {
					return nil, err
				}
				return counts.Entries(), nil
			},
		}
	}
}
