package pipeline

import "context"

// Zip pulls one value from every source per step and yields them together.
// It stops as soon as any source is exhausted; values already pulled in
// that step are discarded.
func Zip[T any](iters ...Iterator[T]) Iterator[[]T] {
	return &zipIter[T]{iters: iters}
}

// Zip2 is Zip for two sources of different element types.
func Zip2[A, B any](a Iterator[A], b Iterator[B]) Iterator[Pair[A, B]] {
	return &zip2Iter[A, B]{left: From(a), right: From(b)}
}

// Interleave pulls one value from every source per step and yields them
// one by one in source order. It stops under the same rule as Zip.
func Interleave[T any](iters ...Iterator[T]) Iterator[T] {
	return &interleaveIter[T]{zip: &zipIter[T]{iters: iters}}
}

type zipIter[T any] struct {
	iters []Iterator[T]
	done  bool
}

func (it *zipIter[T]) Next(ctx context.Context) ([]T, bool, error) {
	if it.done || len(it.iters) == 0 {
		return nil, false, nil
	}
	step := make([]T, len(it.iters))
	for i, src := range it.iters {
		val, ok, err := From(src).Next(ctx)
		if err != nil || !ok {
			it.done = true
			return nil, false, err
		}
		step[i] = val
	}
	return step, true, nil
}

func (it *zipIter[T]) Close() error {
	it.done = true
	live := make([]Iterator[T], 0, len(it.iters))
	for _, src := range it.iters {
		if src != nil {
			live = append(live, src)
		}
	}
	return closeAll(live)
}

type zip2Iter[A, B any] struct {
	left  Iterator[A]
	right Iterator[B]
	done  bool
}

func (it *zip2Iter[A, B]) Next(ctx context.Context) (Pair[A, B], bool, error) {
	if it.done {
		return Pair[A, B]{}, false, nil
	}
	a, ok, err := it.left.Next(ctx)
	if err != nil || !ok {
		it.done = true
		return Pair[A, B]{}, false, err
	}
	b, ok, err := it.right.Next(ctx)
	if err != nil || !ok {
		it.done = true
		return Pair[A, B]{}, false, err
	}
	return NewPair(a, b), true, nil
}

func (it *zip2Iter[A, B]) Close() error {
	it.done = true
	errL := it.left.Close()
	errR := it.right.Close()
	if errL != nil {
		return errL
	}
	return errR
}

type interleaveIter[T any] struct {
	zip     *zipIter[T]
	pending []T
}

func (it *interleaveIter[T]) Next(ctx context.Context) (T, bool, error) {
	if len(it.pending) == 0 {
		step, ok, err := it.zip.Next(ctx)
		if err != nil || !ok {
			var zero T
			return zero, false, err
		}
		it.pending = step
	}
	val := it.pending[0]
	it.pending = it.pending[1:]
	return val, true, nil
}

func (it *interleaveIter[T]) Close() error {
	it.pending = nil
	return it.zip.Close()
}
