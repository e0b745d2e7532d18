package algebra

import (
	"github.com/wbrown/deltarel/engine"
	"github.com/wbrown/deltarel/reltuple"
)

// Select filters an inner expression by a predicate. It is unary and
// tuple-type-preserving: the predicate never changes what T a tuple
// carries, only whether it survives.
type Select[T any] struct {
	inner engine.Expr[T]
	pred  func(T) bool
	cmp   func(a, b T) int
}

// NewSelect returns the expression { t in inner | pred(t) }.
func NewSelect[T any](inner engine.Expr[T], pred func(T) bool, cmp func(a, b T) int) Select[T] {
	return Select[T]{inner: inner, pred: pred, cmp: cmp}
}

func filterInto[T any](batch reltuple.Tuples[T], pred func(T) bool) []T {
	var out []T
	for _, t := range batch.Items() {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s Select[T]) Collect(db *engine.Database) (reltuple.Tuples[T], error) {
	recent, err := s.inner.Collect(db)
	if err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}
	return reltuple.New(filterInto(recent, s.pred), s.cmp), nil
}

func (s Select[T]) CollectList(db *engine.Database) ([]reltuple.Tuples[T], error) {
	stable, err := s.inner.CollectList(db)
	if err != nil {
		return nil, err
	}
	result := make([]reltuple.Tuples[T], 0, len(stable))
	for _, batch := range stable {
		result = append(result, reltuple.New(filterInto(batch, s.pred), s.cmp))
	}
	return result, nil
}

func (s Select[T]) Dependencies(db *engine.Database, deps *engine.DependencySet) error {
	return s.inner.Dependencies(db, deps)
}
