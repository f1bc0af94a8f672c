// Package pipeline provides composable, pull-based, lazy sequence operators.
//
// Every stage speaks one protocol, Iterator: Next pulls a single value and
// reports when the source is exhausted. Sources of any supported shape
// (slices, strings, insertion-ordered sets and maps, native iter.Seq
// functions, scanners) are normalized into an Iterator once, at the
// boundary. Operators wrap an Iterator into another Iterator without
// pulling; nothing runs until a terminal operation or materializer pulls
// values through the chain, one at a time.
//
// # Operators
//
// Lazy, one value at a time:
//
//   - Map, MapErr, FlatMap: transform values
//   - Filter, Remove, Distinct: select values
//   - Take, TakeWhile, Drop, DropWhile: bound or skip a prefix
//   - Tap, Trace: observe values without altering them
//   - Interpose, Indexed, Partition, Window: reshape the stream
//
// Multi-source and generators:
//
//   - Zip, Zip2, Interleave: lock-step pulls, shortest source wins
//   - Concat, Flatten, FlattenIter: sequential and recursive joins
//   - Iterate, Repeatedly, RepeatForever, Cycle: infinite; bound with Take
//   - Repeat, Range: finite generators
//
// Buffering (drain the source on the first pull):
//
//   - Sort, SortFunc, SortBy, SortByFunc
//   - GroupBy, Frequencies
//
// Terminal:
//
//   - Reduce, Every, Some, Find, Count, First, Last, ForEach
//   - IntoSlice, IntoSet, IntoMap, IntoObj
//
// # Usage
//
//	it := pipeline.Pipe(pipeline.Iterate(func(n int) int { return n + 1 }, 0),
//	    pipeline.Filter(func(n int) bool { return n%2 == 0 }),
//	    pipeline.Take[int](3),
//	)
//	evens, _ := pipeline.Run(ctx, it, pipeline.IntoSlice[int]) // [0 2 4]
//
// Operators whose element type changes compose with Pipe2..Pipe4 or Then:
//
//	counts := pipeline.Pipe2(pipeline.FromString("abca"),
//	    pipeline.Frequencies[string](),
//	    pipeline.SortFunc(pipeline.ByRight[string, int]),
//	)
//
// Iterators are single-pass and not safe for concurrent use. Draining an
// infinite source without a bound never returns.
package pipeline
