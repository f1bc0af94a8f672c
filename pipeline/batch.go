package pipeline

import "context"

// Partition collects up to size values and emits them as a slice. The last
// chunk may be shorter. A size below one defaults to 1.
func Partition[T any](size int) Operator[T, []T] {
	if size <= 0 {
		size = 1
	}
	return func(src Iterator[T]) Iterator[[]T] {
		return &batchIter[T]{source: From(src), size: size}
	}
}

// Window emits overlapping slices of size values, advancing by step values
// each time. Trailing windows shorter than size are not emitted.
func Window[T any](size, step int) Operator[T, []T] {
	if size <= 0 {
		size = 1
	}
	if step <= 0 {
		step = 1
	}
	return func(src Iterator[T]) Iterator[[]T] {
		return &windowIter[T]{source: From(src), size: size, step: step}
	}
}

type batchIter[T any] struct {
	source Iterator[T]
	size   int
	done   bool
}

func (it *batchIter[T]) Next(ctx context.Context) (result []T, ok bool, err error) {
	if it.done {
		return nil, false, nil
	}

	batch := make([]T, 0, it.size)
	for len(batch) < it.size {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			it.done = true
			return nil, false, err
		}
		if !ok {
			it.done = true
			if len(batch) > 0 {
				return batch, true, nil
			}
			return nil, false, nil
		}
		batch = append(batch, val)
	}
	return batch, true, nil
}

func (it *batchIter[T]) Close() error { return it.source.Close() }

type windowIter[T any] struct {
	source Iterator[T]
	size   int
	step   int
	buf    []T
	done   bool
}

func (it *windowIter[T]) Next(ctx context.Context) (result []T, ok bool, err error) {
	if it.done {
		return nil, false, nil
	}
	if len(it.buf) >= it.size {
		// Slide forward, skipping source values when step exceeds size.
		if it.step < len(it.buf) {
			it.buf = append(it.buf[:0:0], it.buf[it.step:]...)
		} else {
			for skip := it.step - len(it.buf); skip > 0; skip-- {
				if _, ok, err := it.source.Next(ctx); err != nil || !ok {
					it.done = true
					return nil, false, err
				}
			}
			it.buf = it.buf[:0:0]
		}
	}
	for len(it.buf) < it.size {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			it.done = true
			return nil, false, err
		}
		it.buf = append(it.buf, val)
	}
	out := make([]T, len(it.buf))
	copy(out, it.buf)
	return out, true, nil
}

func (it *windowIter[T]) Close() error { return it.source.Close() }
