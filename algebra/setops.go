package algebra

import (
	"github.com/wbrown/deltarel/engine"
	"github.com/wbrown/deltarel/reltuple"
)

// Union combines two same-typed expressions under set union.
type Union[T any] struct {
	left, right engine.Expr[T]
	cmp         func(a, b T) int
}

// NewUnion returns the expression left ∪ right.
func NewUnion[T any](left, right engine.Expr[T], cmp func(a, b T) int) Union[T] {
	return Union[T]{left: left, right: right, cmp: cmp}
}

func (u Union[T]) Collect(db *engine.Database) (reltuple.Tuples[T], error) {
	l, err := u.left.Collect(db)
	if err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}
	r, err := u.right.Collect(db)
	if err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}
	return l.Merge(r), nil
}

func (u Union[T]) CollectList(db *engine.Database) ([]reltuple.Tuples[T], error) {
	l, err := u.left.CollectList(db)
	if err != nil {
		return nil, err
	}
	r, err := u.right.CollectList(db)
	if err != nil {
		return nil, err
	}
	result := make([]reltuple.Tuples[T], 0, len(l)+len(r))
	result = append(result, l...)
	result = append(result, r...)
	return result, nil
}

func (u Union[T]) Dependencies(db *engine.Database, deps *engine.DependencySet) error {
	if err := u.left.Dependencies(db, deps); err != nil {
		return err
	}
	return u.right.Dependencies(db, deps)
}

// Intersect combines two same-typed expressions under set intersection.
// Its Collect uses the three-part decomposition (stable_L x recent_R,
// recent_L x stable_R, recent_L x recent_R) so that stable x stable
// pairs, already reported in an earlier round, are never recomputed.
type Intersect[T any] struct {
	left, right engine.Expr[T]
	cmp         func(a, b T) int
}

// NewIntersect returns the expression left ∩ right.
func NewIntersect[T any](left, right engine.Expr[T], cmp func(a, b T) int) Intersect[T] {
	return Intersect[T]{left: left, right: right, cmp: cmp}
}

func (i Intersect[T]) Collect(db *engine.Database) (reltuple.Tuples[T], error) {
	leftRecent, err := i.left.Collect(db)
	if err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}
	rightRecent, err := i.right.Collect(db)
	if err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}
	leftStable, err := i.left.CollectList(db)
	if err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}
	rightStable, err := i.right.CollectList(db)
	if err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}

	var out []T
	sink := func(t T) { out = append(out, t) }
	for _, batch := range leftStable {
		reltuple.Intersect(batch, rightRecent, sink)
	}
	for _, batch := range rightStable {
		reltuple.Intersect(leftRecent, batch, sink)
	}
	reltuple.Intersect(leftRecent, rightRecent, sink)
	return reltuple.New(out, i.cmp), nil
}

func (i Intersect[T]) CollectList(db *engine.Database) ([]reltuple.Tuples[T], error) {
	left, err := i.left.CollectList(db)
	if err != nil {
		return nil, err
	}
	right, err := i.right.CollectList(db)
	if err != nil {
		return nil, err
	}
	result := make([]reltuple.Tuples[T], 0, len(left))
	for _, lb := range left {
		var out []T
		sink := func(t T) { out = append(out, t) }
		for _, rb := range right {
			reltuple.Intersect(lb, rb, sink)
		}
		result = append(result, reltuple.New(out, i.cmp))
	}
	return result, nil
}

func (i Intersect[T]) Dependencies(db *engine.Database, deps *engine.DependencySet) error {
	if err := i.left.Dependencies(db, deps); err != nil {
		return err
	}
	return i.right.Dependencies(db, deps)
}

// Difference is the single set-subtraction operator (the source's
// parallel Diff/Difference nodes collapse into this one). Its Collect
// reports every tuple of left's current extension (recent and every
// stable batch) that is absent from the right side's full current
// extension (stable batches plus recent); tuples reported in an earlier
// round are reported again.
type Difference[T any] struct {
	left, right engine.Expr[T]
	cmp         func(a, b T) int
}

// NewDifference returns the expression left - right.
func NewDifference[T any](left, right engine.Expr[T], cmp func(a, b T) int) Difference[T] {
	return Difference[T]{left: left, right: right, cmp: cmp}
}

func (d Difference[T]) excluders(db *engine.Database) ([]reltuple.Tuples[T], error) {
	rightStable, err := d.right.CollectList(db)
	if err != nil {
		return nil, err
	}
	rightRecent, err := d.right.Collect(db)
	if err != nil {
		return nil, err
	}
	excluders := make([]reltuple.Tuples[T], 0, len(rightStable)+1)
	excluders = append(excluders, rightStable...)
	excluders = append(excluders, rightRecent)
	return excluders, nil
}

func (d Difference[T]) Collect(db *engine.Database) (reltuple.Tuples[T], error) {
	leftRecent, err := d.left.Collect(db)
	if err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}
	leftStable, err := d.left.CollectList(db)
	if err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}
	excluders, err := d.excluders(db)
	if err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}

	var out []T
	sink := func(t T) { out = append(out, t) }
	for _, batch := range leftStable {
		reltuple.Diff(batch, excluders, sink)
	}
	reltuple.Diff(leftRecent, excluders, sink)
	return reltuple.New(out, d.cmp), nil
}

func (d Difference[T]) CollectList(db *engine.Database) ([]reltuple.Tuples[T], error) {
	leftStable, err := d.left.CollectList(db)
	if err != nil {
		return nil, err
	}
	excluders, err := d.excluders(db)
	if err != nil {
		return nil, err
	}
	result := make([]reltuple.Tuples[T], 0, len(leftStable))
	for _, batch := range leftStable {
		var out []T
		reltuple.Diff(batch, excluders, func(t T) { out = append(out, t) })
		result = append(result, reltuple.New(out, d.cmp))
	}
	return result, nil
}

func (d Difference[T]) Dependencies(db *engine.Database, deps *engine.DependencySet) error {
	if err := d.left.Dependencies(db, deps); err != nil {
		return err
	}
	return d.right.Dependencies(db, deps)
}
