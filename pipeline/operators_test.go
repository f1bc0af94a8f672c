package pipeline

import (
	"context"
	stderrors "errors"
	"strconv"
	"strings"
	"testing"

	"github.com/kbukum/seqkit/errors"
)

// --- Map / MapErr / FlatMap ---

func TestMap(t *testing.T) {
	got := collect(t, Map(strconv.Itoa)(Of(1, 2, 3)))
	assertEqual(t, got, []string{"1", "2", "3"})
}

func TestMapErr_WrapsCallbackError(t *testing.T) {
	boom := stderrors.New("boom")
	it := MapErr(func(_ context.Context, n int) (int, error) {
		if n == 3 {
			return 0, boom
		}
		return n * 10, nil
	})(Of(1, 2, 3, 4))

	got, err := IntoSlice(context.Background(), it)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsCode(err, errors.ErrCodeCallback) {
		t.Errorf("expected CALLBACK_FAILED, got %v", err)
	}
	if !stderrors.Is(err, boom) {
		t.Error("expected original cause to be reachable")
	}
	if got != nil {
		t.Errorf("expected no values after a callback fault, got %v", got)
	}
}

func TestMap_PropagatesSourceError(t *testing.T) {
	src := &guardedIter{limit: 2}
	_, err := IntoSlice(context.Background(), Map(func(n int) int { return n })(src))
	if err == nil || errors.IsAppError(err) {
		t.Errorf("expected the source error unchanged, got %v", err)
	}
}

func TestFlatMap(t *testing.T) {
	it := FlatMap(func(s string) Iterator[string] { return FromString(s) })(Of("ab", "", "c"))
	assertEqual(t, collect(t, it), []string{"a", "b", "c"})
}

func TestFlatMap_Lazy(t *testing.T) {
	it := FlatMap(func(n int) Iterator[int] { return RepeatForever(n) })(&guardedIter{limit: 1})
	got := collect(t, Take[int](3)(it))
	assertEqual(t, got, []int{0, 0, 0})
}

// --- Filter / Remove / Distinct ---

func TestFilterAndRemove(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }
	assertEqual(t, collect(t, Filter(even)(Of(1, 2, 3, 4))), []int{2, 4})
	assertEqual(t, collect(t, Remove(even)(Of(1, 2, 3, 4))), []int{1, 3})
}

func TestDistinct(t *testing.T) {
	assertEqual(t, collect(t, Distinct[string]()(Of("b", "a", "b", "c", "a"))), []string{"b", "a", "c"})
}

// --- Take / Drop ---

func TestTake_DoesNotOverPull(t *testing.T) {
	src := &guardedIter{limit: 3}
	got := collect(t, Take[int](3)(src))
	assertEqual(t, got, []int{0, 1, 2})
	if src.pulls != 3 {
		t.Errorf("expected 3 pulls, got %d", src.pulls)
	}
}

func TestTake_Bounds(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []int
	}{
		{"zero", 0, nil},
		{"negative", -2, nil},
		{"fewer than source", 2, []int{1, 2}},
		{"more than source", 10, []int{1, 2, 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertEqual(t, collect(t, Take[int](tc.n)(Of(1, 2, 3))), tc.want)
		})
	}
}

func TestTake_Infinite(t *testing.T) {
	got := collect(t, Take[int](3)(Iterate(func(n int) int { return n + 1 }, 0)))
	assertEqual(t, got, []int{0, 1, 2})
}

func TestTakeWhile(t *testing.T) {
	src := &guardedIter{limit: 4}
	got := collect(t, TakeWhile(func(n int) bool { return n < 3 })(src))
	assertEqual(t, got, []int{0, 1, 2})
	if src.pulls != 4 {
		t.Errorf("expected the first failing value to be the last pull, got %d pulls", src.pulls)
	}
}

func TestDrop(t *testing.T) {
	assertEqual(t, collect(t, Drop[int](4)(Range(0, 7, 1))), []int{4, 5, 6})
	assertEqual(t, collect(t, Drop[int](10)(Of(1, 2))), []int(nil))
	assertEqual(t, collect(t, Drop[int](0)(Of(1, 2))), []int{1, 2})
}

func TestDrop_ConsumesPrefixOnFirstPull(t *testing.T) {
	src := &guardedIter{limit: 10}
	it := Drop[int](4)(src)
	if src.pulls != 0 {
		t.Fatalf("expected no pulls before consumption, got %d", src.pulls)
	}
	v, ok, err := it.Next(context.Background())
	if err != nil || !ok || v != 4 {
		t.Fatalf("Next() = %d, %v, %v", v, ok, err)
	}
	if src.pulls != 5 {
		t.Errorf("expected 5 pulls, got %d", src.pulls)
	}
}

func TestDropWhile(t *testing.T) {
	got := collect(t, DropWhile(func(n int) bool { return n < 3 })(Of(1, 2, 5, 1, 7)))
	assertEqual(t, got, []int{5, 1, 7})
}

// --- Tap ---

func TestTap_InterleavesWithPulls(t *testing.T) {
	var events []string
	it := Map(func(n int) int {
		events = append(events, "map "+strconv.Itoa(n))
		return n
	})(Tap(func(n int) {
		events = append(events, "tap "+strconv.Itoa(n))
	})(Of(1, 2)))

	collect(t, it)
	assertEqual(t, events, []string{"tap 1", "map 1", "tap 2", "map 2"})
}

func TestTapErr(t *testing.T) {
	it := TapErr(func(_ context.Context, n int) error {
		if n > 1 {
			return stderrors.New("too big")
		}
		return nil
	})(Of(1, 2))
	got, err := IntoSlice(context.Background(), it)
	if !errors.IsCode(err, errors.ErrCodeCallback) {
		t.Errorf("expected callback error, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no values after a callback fault, got %v", got)
	}
}

// --- Interpose / Indexed ---

func TestInterpose(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"empty", nil, nil},
		{"single", []string{"a"}, []string{"a"}},
		{"many", []string{"a", "b", "c"}, []string{"a", ",", "b", ",", "c"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertEqual(t, collect(t, Interpose(",")(FromSlice(tc.in))), tc.want)
		})
	}
}

func TestInterpose_PullsLazily(t *testing.T) {
	src := &guardedIter{limit: 2}
	got := collect(t, Take[int](3)(Interpose(-1)(src)))
	assertEqual(t, got, []int{0, -1, 1})
	if src.pulls != 2 {
		t.Errorf("expected 2 pulls, got %d", src.pulls)
	}
}

func TestIndexed(t *testing.T) {
	got := collect(t, Indexed[string]()(Of("x", "y")))
	assertEqual(t, got, []Pair[int, string]{NewPair(0, "x"), NewPair(1, "y")})
}

// --- Concat / Partition / Window ---

func TestConcat(t *testing.T) {
	got := collect(t, Concat(Of(1, 2), nil, Empty[int](), Of(3)))
	assertEqual(t, got, []int{1, 2, 3})
}

func TestPartition(t *testing.T) {
	got := collect(t, Partition[int](2)(Of(1, 2, 3, 4, 5)))
	assertEqual(t, got, [][]int{{1, 2}, {3, 4}, {5}})
	assertEqual(t, len(collect(t, Partition[int](3)(Empty[int]()))), 0)
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name       string
		size, step int
		want       [][]int
	}{
		{"sliding", 3, 1, [][]int{{1, 2, 3}, {2, 3, 4}, {3, 4, 5}}},
		{"tumbling", 2, 2, [][]int{{1, 2}, {3, 4}}},
		{"gapped", 2, 3, [][]int{{1, 2}, {4, 5}}},
		{"larger than source", 6, 1, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := collect(t, Window[int](tc.size, tc.step)(Of(1, 2, 3, 4, 5)))
			assertEqual(t, got, tc.want)
		})
	}
}

func TestWindow_DoesNotAliasEmittedSlices(t *testing.T) {
	windows := collect(t, Window[string](2, 1)(FromSlice(strings.Split("abc", ""))))
	windows[0][1] = "z"
	assertEqual(t, windows[1], []string{"b", "c"})
}
