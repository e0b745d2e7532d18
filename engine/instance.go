package engine

import "github.com/wbrown/deltarel/reltuple"

// instance is the three-tier storage shared by relations and views:
// toAdd accumulates writes since the last recalculation, recent holds
// the delta produced by the most recent recalculation, and stable holds
// the geometrically-compacted run of all older deltas.
//
// Invariants (see spec §3):
//  1. stable is a list of non-empty, individually sorted, duplicate-free
//     batches; no tuple appears in more than one stable batch.
//  2. recent is disjoint from every batch in stable.
//  3. toAdd is opaque scratch space; tier promotion filters it.
//  4. The logical content of an instance is the dedup'd union of all
//     three tiers.
//  5. Immediately after a recalculation, toAdd is empty and recent
//     holds only the tuples that were not yet in any tier before it.
type instance[T any] struct {
	cmp    func(a, b T) int
	toAdd  []reltuple.Tuples[T]
	recent reltuple.Tuples[T]
	stable []reltuple.Tuples[T]
}

func newInstance[T any](cmp func(a, b T) int) *instance[T] {
	return &instance[T]{
		cmp:    cmp,
		recent: reltuple.Empty[T](cmp),
	}
}

// insert appends a batch to toAdd. Never fails, never blocks.
func (inst *instance[T]) insert(batch reltuple.Tuples[T]) {
	inst.toAdd = append(inst.toAdd, batch)
}

// recalculate folds the previous recent into stable and compacts stable
// geometrically, then promotes newRecentRaw into recent, filtered
// against the updated stable (so a tuple already in the previous recent
// is not reported again). newRecentRaw supplies the replacement recent
// tier for a relation (derived straight from toAdd); for a view it is
// instead the freshly evaluated incremental delta of the view's
// expression. Either way, the filter-against-stable step and the
// compaction policy are identical, so both relation and view
// recalculation route through this one primitive.
func (inst *instance[T]) recalculate(newRecentRaw reltuple.Tuples[T]) {
	if inst.recent.Len() > 0 {
		inst.stable = append(inst.stable, inst.recent)
		inst.compactStable()
	}

	var filtered []T
	for _, t := range newRecentRaw.Items() {
		if !reltuple.ContainsAny(t, inst.stable) {
			filtered = append(filtered, t)
		}
	}
	merged := reltuple.New(filtered, inst.cmp)

	inst.toAdd = nil
	inst.recent = merged
}

// mergedToAdd collapses the toAdd buffer into one sorted, duplicate-free
// batch, without consulting stable. Used by relation recalculation.
func (inst *instance[T]) mergedToAdd() reltuple.Tuples[T] {
	if len(inst.toAdd) == 0 {
		return reltuple.Empty[T](inst.cmp)
	}
	var all []T
	for _, b := range inst.toAdd {
		all = append(all, b.Items()...)
	}
	return reltuple.New(all, inst.cmp)
}

// compactStable merges the last two stable batches while the
// second-to-last is no more than twice the size of the last, bounding
// the stable-list length at O(log N) for N total tuples.
func (inst *instance[T]) compactStable() {
	for len(inst.stable) >= 2 {
		n := len(inst.stable)
		x, y := inst.stable[n-2], inst.stable[n-1]
		if x.Len() > 2*y.Len() {
			break
		}
		inst.stable = inst.stable[:n-2]
		inst.stable = append(inst.stable, x.Merge(y))
	}
}

// isEmpty reports whether every tier is empty.
func (inst *instance[T]) isEmpty() bool {
	if inst.recent.Len() > 0 || len(inst.toAdd) > 0 {
		return false
	}
	for _, b := range inst.stable {
		if b.Len() > 0 {
			return false
		}
	}
	return true
}

// sizes reports the tier sizes, for introspection (Database.Stats).
func (inst *instance[T]) sizes() (toAdd, recent, stable int) {
	for _, b := range inst.toAdd {
		toAdd += b.Len()
	}
	recent = inst.recent.Len()
	for _, b := range inst.stable {
		stable += b.Len()
	}
	return
}
