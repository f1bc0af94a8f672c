package pipeline

import (
	"context"
	"fmt"
	"reflect"

	"github.com/kbukum/seqkit/errors"
)

// Flatten descends depth-first, left-to-right into nested sequences and
// yields only the leaves. An item is nested when it is an iterator, a
// Source, a slice or an array of any element type, unless it already is a
// T; anything else is a leaf and must be a T. Nesting depth is unbounded
// and evaluation is lazy: inner sequences are opened only when the
// traversal reaches them.
func Flatten[T any](src Iterator[any]) Iterator[T] {
	return &flattenIter[T]{stack: []Iterator[any]{From(src)}}
}

// FlattenIter concatenates the iterators yielded by src, one level deep.
func FlattenIter[T any](src Iterator[Iterator[T]]) Iterator[T] {
	return FlatMap(func(it Iterator[T]) Iterator[T] { return it })(src)
}

type flattenIter[T any] struct {
	stack []Iterator[any]
}

func (it *flattenIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		item, ok, err := top.Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if !ok {
			_ = top.Close()
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		if inner, nested := nestedIter[T](item); nested {
			it.stack = append(it.stack, inner)
			continue
		}
		leaf, isT := item.(T)
		if !isT {
			return zero, false, errors.LeafType(item, fmt.Sprintf("%T", zero))
		}
		return leaf, true, nil
	}
	return zero, false, nil
}

func (it *flattenIter[T]) Close() error {
	err := closeAll(it.stack)
	it.stack = nil
	return err
}

// nestedIter reports whether item is a sequence Flatten descends into and,
// if so, returns an iterator over its elements.
func nestedIter[T any](item any) (Iterator[any], bool) {
	switch v := item.(type) {
	case Iterator[any]:
		return v, true
	case Source[any]:
		return Iter(v), true
	case []any:
		return FromSlice(v), true
	case Iterator[T]:
		return widen(v), true
	case Source[T]:
		return widen(Iter(v)), true
	case []T:
		return widen(FromSlice(v)), true
	}
	if _, leaf := item.(T); leaf {
		return nil, false
	}
	return reflectNested(reflect.ValueOf(item))
}

func widen[T any](it Iterator[T]) Iterator[any] {
	return Map(func(x T) any { return x })(it)
}

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// reflectNested covers element types the type switch cannot name, such as
// [][]T or Iterator[[]T].
func reflectNested(v reflect.Value) (Iterator[any], bool) {
	if !v.IsValid() {
		return nil, false
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		i := 0
		return FromFunc(func(_ context.Context) (any, bool, error) {
			if i >= v.Len() {
				return nil, false, nil
			}
			x := v.Index(i).Interface()
			i++
			return x, true, nil
		}, nil), true
	}
	if next := v.MethodByName("Next"); next.IsValid() && isNextFunc(next.Type()) {
		return &reflectIter{next: v.MethodByName("Next"), close: v.MethodByName("Close")}, true
	}
	if iter := v.MethodByName("Iter"); iter.IsValid() && iter.Type().NumIn() == 0 && iter.Type().NumOut() == 1 {
		out := iter.Call(nil)[0]
		if out.Kind() == reflect.Interface {
			if out.IsNil() {
				return Empty[any](), true
			}
			out = out.Elem()
		}
		return reflectNested(out)
	}
	return nil, false
}

func isNextFunc(t reflect.Type) bool {
	return t.NumIn() == 1 && t.In(0) == contextType &&
		t.NumOut() == 3 && t.Out(1).Kind() == reflect.Bool && t.Out(2) == errorType
}

// reflectIter adapts an Iterator of an element type only known at run time.
type reflectIter struct {
	next  reflect.Value
	close reflect.Value
}

func (it *reflectIter) Next(ctx context.Context) (any, bool, error) {
	out := it.next.Call([]reflect.Value{reflect.ValueOf(&ctx).Elem()})
	if !out[2].IsNil() {
		return nil, false, out[2].Interface().(error)
	}
	if !out[1].Bool() {
		return nil, false, nil
	}
	return out[0].Interface(), true, nil
}

func (it *reflectIter) Close() error {
	if !it.close.IsValid() || it.close.Type().NumIn() != 0 || it.close.Type().NumOut() != 1 {
		return nil
	}
	if err, ok := it.close.Call(nil)[0].Interface().(error); ok {
		return err
	}
	return nil
}
