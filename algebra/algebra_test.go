package algebra_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/deltarel/algebra"
	"github.com/wbrown/deltarel/engine"
	"github.com/wbrown/deltarel/reltuple"
)

func intCmp(a, b int) int { return a - b }

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

func pairIntStringCmp(a, b reltuple.Pair[int, string]) int {
	if c := intCmp(a.Fst, b.Fst); c != 0 {
		return c
	}
	return strCmp(a.Snd, b.Snd)
}

// S1: union of two relations is the sorted set union of their contents.
func TestScenarioUnion(t *testing.T) {
	db := engine.NewDatabase()
	r, err := engine.AddRelation[int](db, "r", intCmp)
	require.NoError(t, err)
	s, err := engine.AddRelation[int](db, "s", intCmp)
	require.NoError(t, err)
	require.NoError(t, engine.Insert(db, r, reltuple.New([]int{1, 2, 3, 6}, intCmp)))
	require.NoError(t, engine.Insert(db, s, reltuple.New([]int{1, 4, 3, 5}, intCmp)))

	expr := algebra.NewUnion[int](algebra.NewRelation(r), algebra.NewRelation(s), intCmp)
	result, err := engine.Evaluate[int](db, expr)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, result.Items())
}

// S2: difference is the set of left elements not present in right.
func TestScenarioDifference(t *testing.T) {
	db := engine.NewDatabase()
	r, err := engine.AddRelation[int](db, "r", intCmp)
	require.NoError(t, err)
	s, err := engine.AddRelation[int](db, "s", intCmp)
	require.NoError(t, err)
	require.NoError(t, engine.Insert(db, r, reltuple.New([]int{1, 2, 3, 6}, intCmp)))
	require.NoError(t, engine.Insert(db, s, reltuple.New([]int{1, 3}, intCmp)))

	expr := algebra.NewDifference[int](algebra.NewRelation(r), algebra.NewRelation(s), intCmp)
	result, err := engine.Evaluate[int](db, expr)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 6}, result.Items())
}

// S3: intersection is the set of elements present in both sides.
func TestScenarioIntersect(t *testing.T) {
	db := engine.NewDatabase()
	r, err := engine.AddRelation[int](db, "r", intCmp)
	require.NoError(t, err)
	s, err := engine.AddRelation[int](db, "s", intCmp)
	require.NoError(t, err)
	require.NoError(t, engine.Insert(db, r, reltuple.New([]int{1, 2, 3, 6}, intCmp)))
	require.NoError(t, engine.Insert(db, s, reltuple.New([]int{1, 4, 3, 5}, intCmp)))

	expr := algebra.NewIntersect[int](algebra.NewRelation(r), algebra.NewRelation(s), intCmp)
	result, err := engine.Evaluate[int](db, expr)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, result.Items())
}

// S4: select filters under a predicate.
func TestScenarioSelect(t *testing.T) {
	db := engine.NewDatabase()
	r, err := engine.AddRelation[int](db, "r", intCmp)
	require.NoError(t, err)
	require.NoError(t, engine.Insert(db, r, reltuple.New([]int{1, 2, 3, 4, 5, 6}, intCmp)))

	expr := algebra.NewSelect[int](algebra.NewRelation(r), func(x int) bool { return x%2 == 0 }, intCmp)
	result, err := engine.Evaluate[int](db, expr)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, result.Items())
}

// S5: join combines matching keys across two key-value relations.
func TestScenarioJoin(t *testing.T) {
	db := engine.NewDatabase()
	type kv = reltuple.Pair[int, string]
	kvCmp := func(a, b kv) int {
		if c := intCmp(a.Fst, b.Fst); c != 0 {
			return c
		}
		return strCmp(a.Snd, b.Snd)
	}

	left, err := engine.AddRelation[kv](db, "left", kvCmp)
	require.NoError(t, err)
	right, err := engine.AddRelation[kv](db, "right", kvCmp)
	require.NoError(t, err)
	require.NoError(t, engine.Insert(db, left, reltuple.New([]kv{{Fst: 1, Snd: "a"}, {Fst: 2, Snd: "b"}}, kvCmp)))
	require.NoError(t, engine.Insert(db, right, reltuple.New([]kv{{Fst: 1, Snd: "x"}, {Fst: 2, Snd: "y"}}, kvCmp)))

	joined := algebra.NewJoin[int, string, string, string](
		algebra.NewRelation(left),
		algebra.NewRelation(right),
		intCmp,
		func(k int, l, r string) string { return l + r },
		strCmp,
	)
	result, err := engine.Evaluate[string](db, joined)
	require.NoError(t, err)
	assert.Equal(t, []string{"ax", "by"}, result.Items())
}

// S6: views recalculate incrementally as their underlying relations grow.
func TestScenarioViewTracksRelationGrowth(t *testing.T) {
	db := engine.NewDatabase()
	r, err := engine.AddRelation[int](db, "r", intCmp)
	require.NoError(t, err)
	require.NoError(t, engine.Insert(db, r, reltuple.New([]int{1, 2, 3}, intCmp)))

	evens := algebra.NewSelect[int](algebra.NewRelation(r), func(x int) bool { return x%2 == 0 }, intCmp)
	view, err := engine.StoreView[int](db, evens, intCmp)
	require.NoError(t, err)

	result, err := engine.Evaluate[int](db, algebra.NewView(view))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, result.Items())

	require.NoError(t, engine.Insert(db, r, reltuple.New([]int{4, 5, 6}, intCmp)))
	result, err = engine.Evaluate[int](db, algebra.NewView(view))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, result.Items())
}

// S7: composite expressions (project over a join) evaluate correctly
// and evaluate() is idempotent with no intervening insert.
func TestScenarioProjectOverJoinIsIdempotent(t *testing.T) {
	db := engine.NewDatabase()
	type kv = reltuple.Pair[int, string]
	kvCmp := func(a, b kv) int {
		if c := intCmp(a.Fst, b.Fst); c != 0 {
			return c
		}
		return strCmp(a.Snd, b.Snd)
	}
	left, err := engine.AddRelation[kv](db, "left", kvCmp)
	require.NoError(t, err)
	right, err := engine.AddRelation[kv](db, "right", kvCmp)
	require.NoError(t, err)
	require.NoError(t, engine.Insert(db, left, reltuple.New([]kv{{Fst: 1, Snd: "a"}}, kvCmp)))
	require.NoError(t, engine.Insert(db, right, reltuple.New([]kv{{Fst: 1, Snd: "x"}}, kvCmp)))

	joined := algebra.NewJoin[int, string, string, string](
		algebra.NewRelation(left), algebra.NewRelation(right), intCmp,
		func(k int, l, r string) string { return l + r }, strCmp,
	)
	projected := algebra.NewProject[string, int](joined, func(s string) int { return len(s) }, intCmp)

	first, err := engine.Evaluate[int](db, projected)
	require.NoError(t, err)
	second, err := engine.Evaluate[int](db, projected)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.Equal(t, []int{2}, first.Items())
}

func TestProductCombinesEveryPair(t *testing.T) {
	db := engine.NewDatabase()
	r, err := engine.AddRelation[int](db, "r", intCmp)
	require.NoError(t, err)
	s, err := engine.AddRelation[string](db, "s", strCmp)
	require.NoError(t, err)
	require.NoError(t, engine.Insert(db, r, reltuple.New([]int{1, 2}, intCmp)))
	require.NoError(t, engine.Insert(db, s, reltuple.New([]string{"a", "b"}, strCmp)))

	prod := algebra.NewProduct[int, string, reltuple.Pair[int, string]](
		algebra.NewRelation(r), algebra.NewRelation(s),
		func(l int, rr string) reltuple.Pair[int, string] { return reltuple.Pair[int, string]{Fst: l, Snd: rr} },
		pairIntStringCmp,
	)
	result, err := engine.Evaluate[reltuple.Pair[int, string]](db, prod)
	require.NoError(t, err)
	assert.Equal(t, []reltuple.Pair[int, string]{
		{Fst: 1, Snd: "a"}, {Fst: 1, Snd: "b"}, {Fst: 2, Snd: "a"}, {Fst: 2, Snd: "b"},
	}, result.Items())
}

func TestSingletonAndEmptyAndFull(t *testing.T) {
	db := engine.NewDatabase()

	single, err := engine.Evaluate[int](db, algebra.NewSingleton[int](42, intCmp))
	require.NoError(t, err)
	assert.Equal(t, []int{42}, single.Items())

	empty, err := engine.Evaluate[int](db, algebra.NewEmpty[int](intCmp))
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	full, err := engine.Evaluate[int](db, algebra.NewFull[int](intCmp))
	require.NoError(t, err)
	assert.Equal(t, 0, full.Len())
}

// Difference tracks the right side's current extension, not just what
// it held when the left side was first reported as differing.
func TestDifferenceReactsToLaterRightInsert(t *testing.T) {
	db := engine.NewDatabase()
	r, err := engine.AddRelation[int](db, "r", intCmp)
	require.NoError(t, err)
	s, err := engine.AddRelation[int](db, "s", intCmp)
	require.NoError(t, err)
	require.NoError(t, engine.Insert(db, r, reltuple.New([]int{1, 2, 3}, intCmp)))

	diffExpr := algebra.NewDifference[int](algebra.NewRelation(r), algebra.NewRelation(s), intCmp)
	result, err := engine.Evaluate[int](db, diffExpr)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, result.Items())

	require.NoError(t, engine.Insert(db, s, reltuple.New([]int{2}, intCmp)))
	result, err = engine.Evaluate[int](db, diffExpr)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, result.Items())
}
