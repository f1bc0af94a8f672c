package pipeline

import (
	"context"

	"github.com/kbukum/seqkit/errors"
)

// Map transforms each value using fn.
func Map[I, O any](fn func(I) O) Operator[I, O] {
	return MapErr(func(_ context.Context, v I) (O, error) {
		return fn(v), nil
	})
}

// MapErr transforms each value using a fallible fn. The first error stops
// the chain and is returned from Next.
func MapErr[I, O any](fn func(context.Context, I) (O, error)) Operator[I, O] {
	return func(src Iterator[I]) Iterator[O] {
		return &mapIter[I, O]{source: From(src), fn: fn}
	}
}

// FlatMap transforms each value into an iterator and flattens the results
// one level deep.
func FlatMap[I, O any](fn func(I) Iterator[O]) Operator[I, O] {
	return func(src Iterator[I]) Iterator[O] {
		return &flatMapIter[I, O]{source: From(src), fn: fn}
	}
}

// Filter keeps only values that satisfy pred.
func Filter[T any](pred func(T) bool) Operator[T, T] {
	return func(src Iterator[T]) Iterator[T] {
		return &filterIter[T]{source: From(src), fn: pred}
	}
}

// Remove drops values that satisfy pred.
func Remove[T any](pred func(T) bool) Operator[T, T] {
	return Filter(func(v T) bool { return !pred(v) })
}

// Take yields at most the first n values. Once n values have been yielded
// the source is not pulled again, which makes Take the bound for infinite
// sources.
func Take[T any](n int) Operator[T, T] {
	return func(src Iterator[T]) Iterator[T] {
		return &takeIter[T]{source: From(src), remaining: n}
	}
}

// TakeWhile yields values until pred first fails.
func TakeWhile[T any](pred func(T) bool) Operator[T, T] {
	return func(src Iterator[T]) Iterator[T] {
		return &takeWhileIter[T]{source: From(src), fn: pred}
	}
}

// Drop discards the first n values and passes the rest through. The prefix
// is consumed on the first pull.
func Drop[T any](n int) Operator[T, T] {
	return func(src Iterator[T]) Iterator[T] {
		return &dropIter[T]{source: From(src), n: n}
	}
}

// DropWhile discards leading values while pred holds. The first value that
// fails pred and everything after it are yielded unconditionally.
func DropWhile[T any](pred func(T) bool) Operator[T, T] {
	return func(src Iterator[T]) Iterator[T] {
		return &dropWhileIter[T]{source: From(src), fn: pred, dropping: true}
	}
}

// Tap calls fn as a side-effect for each value, then passes the value
// through unchanged.
func Tap[T any](fn func(T)) Operator[T, T] {
	return TapErr(func(_ context.Context, v T) error {
		fn(v)
		return nil
	})
}

// TapErr is Tap with a fallible side-effect. An error stops the chain.
func TapErr[T any](fn func(context.Context, T) error) Operator[T, T] {
	return func(src Iterator[T]) Iterator[T] {
		return &tapIter[T]{source: From(src), fn: fn}
	}
}

// Interpose yields sep between consecutive values, never before the first
// or after the last.
func Interpose[T any](sep T) Operator[T, T] {
	return func(src Iterator[T]) Iterator[T] {
		return &interposeIter[T]{source: From(src), sep: sep}
	}
}

// Indexed pairs each value with its zero-based position.
func Indexed[T any]() Operator[T, Pair[int, T]] {
	return func(src Iterator[T]) Iterator[Pair[int, T]] {
		i := -1
		return &mapIter[T, Pair[int, T]]{source: From(src), fn: func(_ context.Context, v T) (Pair[int, T], error) {
			i++
			return NewPair(i, v), nil
		}}
	}
}

// Distinct yields each value the first time it is seen.
func Distinct[T comparable]() Operator[T, T] {
	return func(src Iterator[T]) Iterator[T] {
		seen := NewSet[T]()
		return &filterIter[T]{source: From(src), fn: func(v T) bool {
			if seen.Contains(v) {
				return false
			}
			seen.Add(v)
			return true
		}}
	}
}

// Concat joins iterators sequentially.
// All values from the first iterator are yielded before the second, etc.
func Concat[T any](iters ...Iterator[T]) Iterator[T] {
	return &concatIter[T]{iters: iters}
}

// --- Iterator implementations ---

type mapIter[I, O any] struct {
	source Iterator[I]
	fn     func(context.Context, I) (O, error)
}

func (it *mapIter[I, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		var zero O
		return zero, false, err
	}
	out, err := it.fn(ctx, val)
	if err != nil {
		var zero O
		return zero, false, errors.Callback("map", err)
	}
	return out, true, nil
}

func (it *mapIter[I, O]) Close() error { return it.source.Close() }

type flatMapIter[I, O any] struct {
	source  Iterator[I]
	fn      func(I) Iterator[O]
	current Iterator[O]
}

func (it *flatMapIter[I, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	for {
		if it.current != nil {
			val, ok, err := it.current.Next(ctx)
			if err != nil {
				var zero O
				return zero, false, err
			}
			if ok {
				return val, true, nil
			}
			_ = it.current.Close()
			it.current = nil
		}
		in, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			var zero O
			return zero, false, err
		}
		it.current = From(it.fn(in))
	}
}

func (it *flatMapIter[I, O]) Close() error {
	if it.current != nil {
		_ = it.current.Close()
	}
	return it.source.Close()
}

type filterIter[T any] struct {
	source Iterator[T]
	fn     func(T) bool
}

func (it *filterIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, false, err
		}
		if it.fn(val) {
			return val, true, nil
		}
	}
}

func (it *filterIter[T]) Close() error { return it.source.Close() }

type takeIter[T any] struct {
	source    Iterator[T]
	remaining int
}

func (it *takeIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	if it.remaining <= 0 {
		return result, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		it.remaining = 0
		return val, false, err
	}
	it.remaining--
	return val, true, nil
}

func (it *takeIter[T]) Close() error { return it.source.Close() }

type takeWhileIter[T any] struct {
	source Iterator[T]
	fn     func(T) bool
	done   bool
}

func (it *takeWhileIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	if it.done {
		return result, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok || !it.fn(val) {
		it.done = true
		return result, false, err
	}
	return val, true, nil
}

func (it *takeWhileIter[T]) Close() error { return it.source.Close() }

type dropIter[T any] struct {
	source Iterator[T]
	n      int
}

func (it *dropIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for ; it.n > 0; it.n-- {
		_, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			it.n = 0
			return result, false, err
		}
	}
	return it.source.Next(ctx)
}

func (it *dropIter[T]) Close() error { return it.source.Close() }

type dropWhileIter[T any] struct {
	source   Iterator[T]
	fn       func(T) bool
	dropping bool
}

func (it *dropWhileIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, false, err
		}
		if it.dropping && it.fn(val) {
			continue
		}
		it.dropping = false
		return val, true, nil
	}
}

func (it *dropWhileIter[T]) Close() error { return it.source.Close() }

type tapIter[T any] struct {
	source Iterator[T]
	fn     func(context.Context, T) error
}

func (it *tapIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return val, ok, err
	}
	if err := it.fn(ctx, val); err != nil {
		var zero T
		return zero, false, errors.Callback("tap", err)
	}
	return val, true, nil
}

func (it *tapIter[T]) Close() error { return it.source.Close() }

type interposeIter[T any] struct {
	source  Iterator[T]
	sep     T
	started bool
	pending T
	held    bool
}

func (it *interposeIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	if it.held {
		it.held = false
		return it.pending, true, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return val, false, err
	}
	if !it.started {
		it.started = true
		return val, true, nil
	}
	it.pending, it.held = val, true
	return it.sep, true, nil
}

func (it *interposeIter[T]) Close() error { return it.source.Close() }

type concatIter[T any] struct {
	iters []Iterator[T]
	index int
}

func (it *concatIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for it.index < len(it.iters) {
		val, ok, err := From(it.iters[it.index]).Next(ctx)
		if err != nil {
			return val, false, err
		}
		if ok {
			return val, true, nil
		}
		it.index++
	}
	var zero T
	return zero, false, nil
}

func (it *concatIter[T]) Close() error {
	var firstErr error
	for _, iter := range it.iters {
		if iter == nil {
			continue
		}
		if err := iter.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
