package algebra

import (
	"github.com/wbrown/deltarel/engine"
	"github.com/wbrown/deltarel/reltuple"
)

// Project maps an inner expression of tuple type S through f to produce
// tuples of type T. Unlike Select, Project changes the tuple type, so it
// is generic over both S (input) and T (output).
type Project[S, T any] struct {
	inner engine.Expr[S]
	f     func(S) T
	cmp   func(a, b T) int
}

// NewProject returns the expression { f(s) | s in inner }, deduplicated
// under cmp.
func NewProject[S, T any](inner engine.Expr[S], f func(S) T, cmp func(a, b T) int) Project[S, T] {
	return Project[S, T]{inner: inner, f: f, cmp: cmp}
}

func (p Project[S, T]) Collect(db *engine.Database) (reltuple.Tuples[T], error) {
	recent, err := p.inner.Collect(db)
	if err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}
	var out []T
	reltuple.Project(recent, p.f, func(t T) { out = append(out, t) })
	return reltuple.New(out, p.cmp), nil
}

func (p Project[S, T]) CollectList(db *engine.Database) ([]reltuple.Tuples[T], error) {
	stable, err := p.inner.CollectList(db)
	if err != nil {
		return nil, err
	}
	result := make([]reltuple.Tuples[T], 0, len(stable))
	for _, batch := range stable {
		var out []T
		reltuple.Project(batch, p.f, func(t T) { out = append(out, t) })
		result = append(result, reltuple.New(out, p.cmp))
	}
	return result, nil
}

func (p Project[S, T]) Dependencies(db *engine.Database, deps *engine.DependencySet) error {
	return p.inner.Dependencies(db, deps)
}
