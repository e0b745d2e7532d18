package algebra

import (
	"github.com/wbrown/deltarel/engine"
	"github.com/wbrown/deltarel/reltuple"
)

// Join equi-joins two key-value expressions on a shared key type K and
// combines each matching (key, left, right) triple with g. Its Collect
// uses the same three-part schema as Intersect so that a stable-batch
// pair, once reported, is never rejoined.
type Join[K, L, R, M any] struct {
	left   engine.Expr[reltuple.Pair[K, L]]
	right  engine.Expr[reltuple.Pair[K, R]]
	keyCmp func(a, b K) int
	g      func(K, L, R) M
	cmp    func(a, b M) int
}

// NewJoin returns the expression { g(k, l, r) | (k, l) in left, (k, r)
// in right, keys equal under keyCmp }.
func NewJoin[K, L, R, M any](
	left engine.Expr[reltuple.Pair[K, L]],
	right engine.Expr[reltuple.Pair[K, R]],
	keyCmp func(a, b K) int,
	g func(K, L, R) M,
	cmp func(a, b M) int,
) Join[K, L, R, M] {
	return Join[K, L, R, M]{left: left, right: right, keyCmp: keyCmp, g: g, cmp: cmp}
}

func (j Join[K, L, R, M]) Collect(db *engine.Database) (reltuple.Tuples[M], error) {
	leftRecent, err := j.left.Collect(db)
	if err != nil {
		var zero reltuple.Tuples[M]
		return zero, err
	}
	rightRecent, err := j.right.Collect(db)
	if err != nil {
		var zero reltuple.Tuples[M]
		return zero, err
	}
	leftStable, err := j.left.CollectList(db)
	if err != nil {
		var zero reltuple.Tuples[M]
		return zero, err
	}
	rightStable, err := j.right.CollectList(db)
	if err != nil {
		var zero reltuple.Tuples[M]
		return zero, err
	}

	var out []M
	sink := func(k K, l L, r R) { out = append(out, j.g(k, l, r)) }
	for _, batch := range leftStable {
		reltuple.Join(batch, rightRecent, j.keyCmp, sink)
	}
	for _, batch := range rightStable {
		reltuple.Join(leftRecent, batch, j.keyCmp, sink)
	}
	reltuple.Join(leftRecent, rightRecent, j.keyCmp, sink)
	return reltuple.New(out, j.cmp), nil
}

func (j Join[K, L, R, M]) CollectList(db *engine.Database) ([]reltuple.Tuples[M], error) {
	left, err := j.left.CollectList(db)
	if err != nil {
		return nil, err
	}
	right, err := j.right.CollectList(db)
	if err != nil {
		return nil, err
	}
	result := make([]reltuple.Tuples[M], 0, len(left))
	for _, lb := range left {
		var out []M
		sink := func(k K, l L, r R) { out = append(out, j.g(k, l, r)) }
		for _, rb := range right {
			reltuple.Join(lb, rb, j.keyCmp, sink)
		}
		result = append(result, reltuple.New(out, j.cmp))
	}
	return result, nil
}

func (j Join[K, L, R, M]) Dependencies(db *engine.Database, deps *engine.DependencySet) error {
	if err := j.left.Dependencies(db, deps); err != nil {
		return err
	}
	return j.right.Dependencies(db, deps)
}
