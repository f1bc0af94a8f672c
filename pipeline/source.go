package pipeline

import (
	"bufio"
	"cmp"
	"context"
	"io"
	"iter"
	"slices"

	"github.com/0x5a17ed/itkit"
	"github.com/samber/lo"

	"github.com/kbukum/seqkit/errors"
)

// Source is an input that can be normalized into an Iterator.
//
// The implementations in this package form a closed set of shapes: Slice,
// String, Seq, *Set, *OrderedMap and the single-pass wrapper returned by Once.
// Re-readable sources return a fresh Iterator from every Iter call.
type Source[T any] interface {
	Iter() Iterator[T]
}

// Iter normalizes src into an Iterator. A nil source yields an iterator
// that is immediately exhausted; a source that already is an Iterator is
// returned as is.
func Iter[T any](src Source[T]) Iterator[T] {
	if src == nil {
		return Empty[T]()
	}
	if it, ok := src.(Iterator[T]); ok {
		return it
	}
	return From(src.Iter())
}

// From returns it unchanged, or an exhausted iterator when it is nil.
func From[T any](it Iterator[T]) Iterator[T] {
	if it == nil {
		return Empty[T]()
	}
	return it
}

// Empty returns an iterator that yields nothing.
func Empty[T any]() Iterator[T] {
	return emptyIter[T]{}
}

// Slice is an ordered sequence source.
type Slice[T any] []T

// Iter returns a fresh iterator over the slice.
func (s Slice[T]) Iter() Iterator[T] { return &sliceIter[T]{items: s} }

// FromSlice creates an iterator over items.
func FromSlice[T any](items []T) Iterator[T] {
	return &sliceIter[T]{items: items}
}

// Of creates an iterator over the given values.
func Of[T any](items ...T) Iterator[T] {
	return FromSlice(items)
}

// String is a source yielding one item per character.
type String string

// Iter returns a fresh iterator over the characters of s.
func (s String) Iter() Iterator[string] {
	return &sliceIter[string]{items: lo.Map([]rune(string(s)), func(r rune, _ int) string {
		return string(r)
	})}
}

// FromString creates an iterator over the characters of s.
func FromString(s string) Iterator[string] {
	return String(s).Iter()
}

// FromSet creates an iterator over the values of s in insertion order.
func FromSet[T comparable](s *Set[T]) Iterator[T] {
	if s == nil {
		return Empty[T]()
	}
	return s.Iter()
}

// FromMap creates an iterator over the entries of m in insertion order.
func FromMap[K comparable, V any](m *OrderedMap[K, V]) Iterator[Pair[K, V]] {
	if m == nil {
		return Empty[Pair[K, V]]()
	}
	return m.Iter()
}

// FromGoMap creates an iterator over the entries of a builtin map. Builtin
// maps have no insertion order, so entries are yielded in key order.
func FromGoMap[K cmp.Ordered, V any](m map[K]V) Iterator[Pair[K, V]] {
	keys := lo.Keys(m)
	slices.Sort(keys)
	entries := make([]Pair[K, V], len(keys))
	for i, k := range keys {
		entries[i] = NewPair(k, m[k])
	}
	return FromSlice(entries)
}

// Seq is a source backed by a native Go iterator function.
type Seq[T any] iter.Seq[T]

// Iter starts a new pull over the sequence.
func (s Seq[T]) Iter() Iterator[T] { return FromSeq(iter.Seq[T](s)) }

// FromSeq creates an iterator that pulls from seq. Close stops the
// underlying sequence.
func FromSeq[T any](seq iter.Seq[T]) Iterator[T] {
	if seq == nil {
		return Empty[T]()
	}
	next, stop := iter.Pull(seq)
	return FromFunc(func(_ context.Context) (T, bool, error) {
		v, ok := next()
		return v, ok, nil
	}, func() error {
		stop()
		return nil
	})
}

// ToSeq adapts it into a range-over-func sequence. Iteration stops after
// the first error, which is yielded alongside a zero value. The iterator
// is closed when the range loop ends.
func ToSeq[T any](ctx context.Context, it Iterator[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer it.Close()
		for {
			val, ok, err := it.Next(ctx)
			if err != nil {
				yield(val, err)
				return
			}
			if !ok || !yield(val, nil) {
				return
			}
		}
	}
}

// FromItkit adapts an itkit iterator.
func FromItkit[T any](src itkit.Iterator[T]) Iterator[T] {
	if src == nil {
		return Empty[T]()
	}
	return FromFunc(func(_ context.Context) (T, bool, error) {
		if !src.Next() {
			var zero T
			return zero, false, nil
		}
		return src.Value(), true, nil
	}, nil)
}

// Once wraps a single-pass iterator as a Source. Every Iter call returns
// the same instance, so consumers share one cursor.
func Once[T any](it Iterator[T]) Source[T] {
	return onceSource[T]{it: From(it)}
}

type onceSource[T any] struct {
	it Iterator[T]
}

func (s onceSource[T]) Iter() Iterator[T] { return s.it }

// FromScanner creates a single-pass iterator over the tokens of sc.
func FromScanner(sc *bufio.Scanner) Iterator[string] {
	return &scannerIter{sc: sc}
}

// MaxLineSize is the longest line FromReader accepts. A longer line ends
// the iterator with an IO error.
const MaxLineSize = 16 << 20

// FromReader creates a single-pass iterator over the lines of r. Close
// closes r when it implements io.Closer.
func FromReader(r io.Reader) Iterator[string] {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	it := &scannerIter{sc: sc}
	if c, ok := r.(io.Closer); ok {
		it.closer = c
	}
	return it
}

type scannerIter struct {
	sc     *bufio.Scanner
	closer io.Closer
	done   bool
}

func (it *scannerIter) Next(_ context.Context) (string, bool, error) {
	if it.done {
		return "", false, nil
	}
	if it.sc.Scan() {
		return it.sc.Text(), true, nil
	}
	it.done = true
	if err := it.sc.Err(); err != nil {
		return "", false, errors.IO("scan", err)
	}
	return "", false, nil
}

func (it *scannerIter) Close() error {
	it.done = true
	if it.closer != nil {
		return it.closer.Close()
	}
	return nil
}
