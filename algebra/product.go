package algebra

import (
	"github.com/wbrown/deltarel/engine"
	"github.com/wbrown/deltarel/reltuple"
)

// Product is the unconstrained Cartesian product: every left tuple
// paired with every right tuple, combined by g. It is Join with a
// trivial (always-equal) key, written directly rather than through
// reltuple.Join's key machinery since there is no key to sort-merge on.
type Product[L, R, M any] struct {
	left  engine.Expr[L]
	right engine.Expr[R]
	g     func(L, R) M
	cmp   func(a, b M) int
}

// NewProduct returns the expression { g(l, r) | l in left, r in right }.
func NewProduct[L, R, M any](left engine.Expr[L], right engine.Expr[R], g func(L, R) M, cmp func(a, b M) int) Product[L, R, M] {
	return Product[L, R, M]{left: left, right: right, g: g, cmp: cmp}
}

func crossAppend[L, R, M any](out []M, ls []L, rs []R, g func(L, R) M) []M {
	for _, l := range ls {
		for _, r := range rs {
			out = append(out, g(l, r))
		}
	}
	return out
}

func (p Product[L, R, M]) Collect(db *engine.Database) (reltuple.Tuples[M], error) {
	leftRecent, err := p.left.Collect(db)
	if err != nil {
		var zero reltuple.Tuples[M]
		return zero, err
	}
	rightRecent, err := p.right.Collect(db)
	if err != nil {
		var zero reltuple.Tuples[M]
		return zero, err
	}
	leftStable, err := p.left.CollectList(db)
	if err != nil {
		var zero reltuple.Tuples[M]
		return zero, err
	}
	rightStable, err := p.right.CollectList(db)
	if err != nil {
		var zero reltuple.Tuples[M]
		return zero, err
	}

	var out []M
	for _, batch := range leftStable {
		out = crossAppend(out, batch.Items(), rightRecent.Items(), p.g)
	}
	for _, batch := range rightStable {
		out = crossAppend(out, leftRecent.Items(), batch.Items(), p.g)
	}
	out = crossAppend(out, leftRecent.Items(), rightRecent.Items(), p.g)
	return reltuple.New(out, p.cmp), nil
}

func (p Product[L, R, M]) CollectList(db *engine.Database) ([]reltuple.Tuples[M], error) {
	left, err := p.left.CollectList(db)
	if err != nil {
		return nil, err
	}
	right, err := p.right.CollectList(db)
	if err != nil {
		return nil, err
	}
	result := make([]reltuple.Tuples[M], 0, len(left))
	for _, lb := range left {
		var out []M
		for _, rb := range right {
			out = crossAppend(out, lb.Items(), rb.Items(), p.g)
		}
		result = append(result, reltuple.New(out, p.cmp))
	}
	return result, nil
}

func (p Product[L, R, M]) Dependencies(db *engine.Database, deps *engine.DependencySet) error {
	if err := p.left.Dependencies(db, deps); err != nil {
		return err
	}
	return p.right.Dependencies(db, deps)
}
