package pipeline

import (
	"context"

	"golang.org/x/exp/constraints"

	"github.com/kbukum/seqkit/errors"
)

// Number is the set of types Range accepts.
type Number interface {
	constraints.Integer | constraints.Float
}

// Iterate yields initial, fn(initial), fn(fn(initial)), ... forever.
// fn is called only when the next value is pulled. Bound it with Take.
func Iterate[T any](fn func(T) T, initial T) Iterator[T] {
	cur, started := initial, false
	return FromFunc(func(ctx context.Context) (T, bool, error) {
		if err := ctx.Err(); err != nil {
			return cur, false, errors.Cancelled("iterate", err)
		}
		if started {
			cur = fn(cur)
		}
		started = true
		return cur, true, nil
	}, nil)
}

// Repeatedly yields the result of calling fn anew for every pull, forever.
func Repeatedly[T any](fn func() T) Iterator[T] {
	return FromFunc(func(ctx context.Context) (T, bool, error) {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, false, errors.Cancelled("repeatedly", err)
		}
		return fn(), true, nil
	}, nil)
}

// Repeat yields value exactly n times.
func Repeat[T any](value T, n int) Iterator[T] {
	return Take[T](n)(RepeatForever(value))
}

// RepeatForever yields value on every pull.
func RepeatForever[T any](value T) Iterator[T] {
	return Repeatedly(func() T { return value })
}

// Range yields start, start+step, ... up to but excluding end. A negative
// step counts down. A zero step fails on the first pull.
func Range[N Number](start, end, step N) Iterator[N] {
	cur := start
	return FromFunc(func(_ context.Context) (N, bool, error) {
		if step == 0 {
			return cur, false, errors.InvalidArgument("step", "must not be zero")
		}
		if (step > 0 && cur >= end) || (step < 0 && cur <= end) {
			return cur, false, nil
		}
		val := cur
		cur += step
		return val, true, nil
	}, nil)
}

// Cycle repeats src forever by flattening an endless iteration of the same
// source. Each lap re-reads src through Iter, so only re-readable sources
// repeat; a lap that yields nothing ends the cycle.
func Cycle[T any](src Source[T]) Iterator[T] {
	if src == nil {
		return Empty[T]()
	}
	lapYielded := true
	laps := TakeWhile(func(Source[T]) bool {
		more := lapYielded
		lapYielded = false
		return more
	})(Iterate(func(s Source[T]) Source[T] { return s }, src))

	return FlatMap(func(s Source[T]) Iterator[T] {
		return Tap(func(T) { lapYielded = true })(Iter(s))
	})(laps)
}
