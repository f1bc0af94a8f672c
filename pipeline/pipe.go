package pipeline

import "context"

// Pipe threads src through ops from left to right:
//
//	Pipe(src, a, b, c) == c(b(a(src)))
//
// With no operators the result is the normalized source. Pipe never pulls;
// the chain runs only as far as the returned iterator is consumed.
func Pipe[T any](src Iterator[T], ops ...Operator[T, T]) Iterator[T] {
	return Chain(ops...)(From(src))
}

// Chain folds same-typed operators into one, applied left to right.
func Chain[T any](ops ...Operator[T, T]) Operator[T, T] {
	switch len(ops) {
	case 0:
		return func(it Iterator[T]) Iterator[T] { return it }
	case 1:
		return ops[0]
	}
	return Then(ops[0], Chain(ops[1:]...))
}

// Then composes f and g so that f runs first.
func Then[A, B, C any](f Operator[A, B], g Operator[B, C]) Operator[A, C] {
	return func(it Iterator[A]) Iterator[C] {
		return g(f(it))
	}
}

// Pipe2 applies two operators whose element types differ.
func Pipe2[A, B, C any](src Iterator[A], op1 Operator[A, B], op2 Operator[B, C]) Iterator[C] {
	return op2(op1(From(src)))
}

// Pipe3 applies three operators whose element types differ.
func Pipe3[A, B, C, D any](src Iterator[A], op1 Operator[A, B], op2 Operator[B, C], op3 Operator[C, D]) Iterator[D] {
	return op3(Pipe2(src, op1, op2))
}

// Pipe4 applies four operators whose element types differ.
func Pipe4[A, B, C, D, E any](src Iterator[A], op1 Operator[A, B], op2 Operator[B, C], op3 Operator[C, D], op4 Operator[D, E]) Iterator[E] {
	return op4(Pipe3(src, op1, op2, op3))
}

// Run applies term to it. The iterator is closed once term returns.
func Run[T, R any](ctx context.Context, it Iterator[T], term Terminal[T, R]) (R, error) {
	it = From(it)
	defer it.Close()
	return term(ctx, it)
}

// PipeTo threads src through ops and finishes with term.
func PipeTo[T, R any](ctx context.Context, src Iterator[T], term Terminal[T, R], ops ...Operator[T, T]) (R, error) {
	return Run(ctx, Pipe(src, ops...), term)
}
