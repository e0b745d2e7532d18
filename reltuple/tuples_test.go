package reltuple

import "testing"

func intCmp(a, b int) int { return a - b }

func TestNewSortsAndDedups(t *testing.T) {
	got := New([]int{3, 1, 2, 1, 3}, intCmp)
	want := []int{1, 2, 3}
	if !equalSlice(got.Items(), want) {
		t.Errorf("New() = %v, want %v", got.Items(), want)
	}
}

func TestMergeIsSortedUnion(t *testing.T) {
	a := New([]int{1, 2, 3, 6}, intCmp)
	b := New([]int{1, 4, 3, 5}, intCmp)
	got := a.Merge(b)
	want := []int{1, 2, 3, 4, 5, 6}
	if !equalSlice(got.Items(), want) {
		t.Errorf("Merge() = %v, want %v", got.Items(), want)
	}
}

func TestMergeIdempotentCommutativeAssociative(t *testing.T) {
	a := New([]int{1, 2, 3}, intCmp)
	b := New([]int{3, 4}, intCmp)
	c := New([]int{4, 5}, intCmp)

	if !a.Merge(a).Equal(a) {
		t.Error("merge is not idempotent")
	}
	if !a.Merge(b).Equal(b.Merge(a)) {
		t.Error("merge is not commutative")
	}
	left := a.Merge(b).Merge(c)
	right := a.Merge(b.Merge(c))
	if !left.Equal(right) {
		t.Error("merge is not associative")
	}
}

func TestContains(t *testing.T) {
	a := New([]int{1, 2, 3}, intCmp)
	if !a.Contains(2) {
		t.Error("expected batch to contain 2")
	}
	if a.Contains(10) {
		t.Error("expected batch to not contain 10")
	}
}

func equalSlice(a, b []int) bool {
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
