package pipeline

import "context"

// Iterator provides pull-based sequential access to a stream of values.
//
// Iterators are single-pass: once Next reports done, every later call
// reports done as well.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Operator turns one iterator into another without pulling from it.
type Operator[I, O any] func(Iterator[I]) Iterator[O]

// Terminal consumes an iterator and produces a concrete value.
type Terminal[T, R any] func(ctx context.Context, it Iterator[T]) (R, error)

// --- Internal iterators ---

type emptyIter[T any] struct{}

func (emptyIter[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, nil
}

func (emptyIter[T]) Close() error { return nil }

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

// funcIter adapts a next function. Once next reports done or fails the
// iterator stays exhausted.
type funcIter[T any] struct {
	next   func(ctx context.Context) (T, bool, error)
	closer func() error
	done   bool
}

func (it *funcIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.next(ctx)
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	return val, true, nil
}

func (it *funcIter[T]) Close() error {
	it.done = true
	if it.closer != nil {
		return it.closer()
	}
	return nil
}

// FromFunc creates an iterator from a next function and an optional closer.
func FromFunc[T any](next func(ctx context.Context) (T, bool, error), closer func() error) Iterator[T] {
	return &funcIter[T]{next: next, closer: closer}
}

func closeAll[T any](iters []Iterator[T]) error {
	var firstErr error
	for _, iter := range iters {
		if err := iter.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
