package reltuple

import "testing"

func TestProject(t *testing.T) {
	batch := New([]int{1, 2, 3, 4}, intCmp)
	var out []int
	Project(batch, func(x int) int { return x + 1 }, func(x int) { out = append(out, x) })
	want := []int{2, 3, 4, 5}
	if !equalSlice(out, want) {
		t.Errorf("Project() = %v, want %v", out, want)
	}
}

func TestIntersect(t *testing.T) {
	a := New([]int{1, 2, 3, 6}, intCmp)
	b := New([]int{1, 4, 3, 5}, intCmp)
	var out []int
	Intersect(a, b, func(x int) { out = append(out, x) })
	want := []int{1, 3}
	if !equalSlice(out, want) {
		t.Errorf("Intersect() = %v, want %v", out, want)
	}
}

func TestDiff(t *testing.T) {
	a := New([]int{1, 2, 3, 6}, intCmp)
	b := New([]int{1, 4, 3, 5}, intCmp)
	var out []int
	Diff(a, []Tuples[int]{b}, func(x int) { out = append(out, x) })
	want := []int{2, 6}
	if !equalSlice(out, want) {
		t.Errorf("Diff() = %v, want %v", out, want)
	}
}

func TestDiffMultipleExcluders(t *testing.T) {
	a := New([]int{1, 2, 3, 4, 5}, intCmp)
	s := New([]int{100, 4, 2}, intCmp)
	excl := New([]int{1, 2, 4, 100}, intCmp)
	var out []int
	Diff(a, []Tuples[int]{s, excl}, func(x int) { out = append(out, x) })
	want := []int{3, 5}
	if !equalSlice(out, want) {
		t.Errorf("Diff() = %v, want %v", out, want)
	}
}

type kv struct {
	k int
	v string
}

func strCmp(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func TestJoin(t *testing.T) {
	left := New([]Pair[int, string]{
		{1, "a"}, {2, "b"}, {1, "a"}, {4, "b"},
	}, func(a, b Pair[int, string]) int {
		if c := intCmp(a.Fst, b.Fst); c != 0 {
			return c
		}
		return strCmp(a.Snd, b.Snd)
	})
	right := New([]Pair[int, string]{
		{1, "x"}, {2, "y"},
	}, func(a, b Pair[int, string]) int {
		if c := intCmp(a.Fst, b.Fst); c != 0 {
			return c
		}
		return strCmp(a.Snd, b.Snd)
	})

	var out []string
	Join(left, right, intCmp, func(k int, l, r string) {
		out = append(out, l+r)
	})

	result := New(out, strCmp)
	want := []string{"ax", "by"}
	if !equalSlice2(result.Items(), want) {
		t.Errorf("Join() = %v, want %v", result.Items(), want)
	}
}

func equalSlice2(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
