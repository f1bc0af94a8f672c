package pipeline

import (
	"context"

	"github.com/kbukum/seqkit/errors"
)

// Reduce folds every value into an accumulator, left to right in
// encounter order.
func Reduce[T, R any](init R, fn func(acc R, v T) R) Terminal[T, R] {
	return func(ctx context.Context, it Iterator[T]) (R, error) {
		acc := init
		err := drain(ctx, it, func(v T) bool {
			acc = fn(acc, v)
			return true
		})
		if err != nil {
			var zero R
			return zero, err
		}
		return acc, nil
	}
}

// Every reports whether pred holds for all values. It stops pulling at
// the first value that fails. An empty source yields true.
func Every[T any](pred func(T) bool) Terminal[T, bool] {
	return func(ctx context.Context, it Iterator[T]) (bool, error) {
		all := true
		err := drain(ctx, it, func(v T) bool {
			all = pred(v)
			return all
		})
		return all, err
	}
}

// Some reports whether pred holds for at least one value. It stops pulling
// at the first match.
func Some[T any](pred func(T) bool) Terminal[T, bool] {
	return func(ctx context.Context, it Iterator[T]) (bool, error) {
		_, found, err := Find(pred)(ctx, it)
		return found, err
	}
}

// Find returns the first value satisfying pred.
func Find[T any](pred func(T) bool) func(context.Context, Iterator[T]) (T, bool, error) {
	return func(ctx context.Context, it Iterator[T]) (T, bool, error) {
		var (
			match T
			found bool
		)
		err := drain(ctx, it, func(v T) bool {
			if pred(v) {
				match, found = v, true
				return false
			}
			return true
		})
		return match, found, err
	}
}

// Count returns the number of values.
func Count[T any]() Terminal[T, int] {
	return Reduce(0, func(n int, _ T) int { return n + 1 })
}

// First returns the first value, pulling exactly once.
func First[T any](ctx context.Context, it Iterator[T]) (T, bool, error) {
	return Find(func(T) bool { return true })(ctx, it)
}

// Last returns the final value.
func Last[T any](ctx context.Context, it Iterator[T]) (T, bool, error) {
	var (
		last  T
		found bool
	)
	err := drain(ctx, it, func(v T) bool {
		last, found = v, true
		return true
	})
	return last, found, err
}

// ForEach calls fn for every value. The first error stops iteration.
func ForEach[T any](fn func(context.Context, T) error) Terminal[T, struct{}] {
	return func(ctx context.Context, it Iterator[T]) (struct{}, error) {
		var cbErr error
		err := drain(ctx, it, func(v T) bool {
			cbErr = fn(ctx, v)
			return cbErr == nil
		})
		if err == nil && cbErr != nil {
			err = errors.Callback("foreach", cbErr)
		}
		return struct{}{}, err
	}
}

// drain pulls from it until exhaustion, an error, or visit returning false.
func drain[T any](ctx context.Context, it Iterator[T], visit func(T) bool) error {
	it = From(it)
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if !ok || !visit(val) {
			return nil
		}
	}
}
