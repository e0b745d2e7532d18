// Package algebra implements the expression tree: the leaf and compound
// node types that satisfy engine.Expr, plus the Incremental collector
// pair (Collect / CollectList) each node carries. Nodes are immutable
// value types held by value in their parents, matching the tagged-
// variant tree the design notes prefer for Go (a closed set of concrete
// node kinds rather than a visitor-trait hierarchy).
package algebra

import (
	"github.com/wbrown/deltarel/engine"
	"github.com/wbrown/deltarel/reltuple"
)

// Full represents every tuple of type T. It is declared for algebraic
// completeness but is never materialized by any collector; the engine
// never needs to enumerate it.
type Full[T any] struct {
	cmp func(a, b T) int
}

// NewFull returns the Full identity expression for T.
func NewFull[T any](cmp func(a, b T) int) Full[T] {
	return Full[T]{cmp: cmp}
}

func (f Full[T]) Collect(db *engine.Database) (reltuple.Tuples[T], error) {
	return reltuple.Empty[T](f.cmp), nil
}

func (f Full[T]) CollectList(db *engine.Database) ([]reltuple.Tuples[T], error) {
	return nil, nil
}

func (f Full[T]) Dependencies(db *engine.Database, deps *engine.DependencySet) error {
	return nil
}

// Empty always evaluates to the empty relation.
type Empty[T any] struct {
	cmp func(a, b T) int
}

// NewEmpty returns the Empty expression for T.
func NewEmpty[T any](cmp func(a, b T) int) Empty[T] {
	return Empty[T]{cmp: cmp}
}

func (e Empty[T]) Collect(db *engine.Database) (reltuple.Tuples[T], error) {
	return reltuple.Empty[T](e.cmp), nil
}

func (e Empty[T]) CollectList(db *engine.Database) ([]reltuple.Tuples[T], error) {
	return nil, nil
}

func (e Empty[T]) Dependencies(db *engine.Database, deps *engine.DependencySet) error {
	return nil
}

// Singleton holds exactly one tuple. It contributes only through
// CollectList (it has no "recent" delta of its own to report).
type Singleton[T any] struct {
	value T
	cmp   func(a, b T) int
}

// NewSingleton returns the one-tuple expression {value}.
func NewSingleton[T any](value T, cmp func(a, b T) int) Singleton[T] {
	return Singleton[T]{value: value, cmp: cmp}
}

func (s Singleton[T]) Collect(db *engine.Database) (reltuple.Tuples[T], error) {
	return reltuple.Empty[T](s.cmp), nil
}

func (s Singleton[T]) CollectList(db *engine.Database) ([]reltuple.Tuples[T], error) {
	return []reltuple.Tuples[T]{reltuple.New([]T{s.value}, s.cmp)}, nil
}

func (s Singleton[T]) Dependencies(db *engine.Database, deps *engine.DependencySet) error {
	return nil
}

// Relation is a handle-carrying leaf referring to a named relation
// instance owned by the database.
type Relation[T any] struct {
	handle engine.RelationHandle[T]
}

// NewRelation wraps a relation handle as an expression leaf.
func NewRelation[T any](handle engine.RelationHandle[T]) Relation[T] {
	return Relation[T]{handle: handle}
}

// Handle returns the underlying relation handle.
func (r Relation[T]) Handle() engine.RelationHandle[T] { return r.handle }

func (r Relation[T]) Collect(db *engine.Database) (reltuple.Tuples[T], error) {
	return engine.RelationRecent(db, r.handle)
}

func (r Relation[T]) CollectList(db *engine.Database) ([]reltuple.Tuples[T], error) {
	return engine.RelationStable(db, r.handle)
}

func (r Relation[T]) Dependencies(db *engine.Database, deps *engine.DependencySet) error {
	return engine.RegisterRelationDependency(db, r.handle, deps)
}

// View is a handle-carrying leaf referring to a materialized view
// instance owned by the database.
type View[T any] struct {
	handle engine.ViewHandle[T]
}

// NewView wraps a view handle as an expression leaf.
func NewView[T any](handle engine.ViewHandle[T]) View[T] {
	return View[T]{handle: handle}
}

// Handle returns the underlying view handle.
func (v View[T]) Handle() engine.ViewHandle[T] { return v.handle }

func (v View[T]) Collect(db *engine.Database) (reltuple.Tuples[T], error) {
	return engine.ViewRecent(db, v.handle)
}

func (v View[T]) CollectList(db *engine.Database) ([]reltuple.Tuples[T], error) {
	return engine.ViewStable(db, v.handle)
}

func (v View[T]) Dependencies(db *engine.Database, deps *engine.DependencySet) error {
	return engine.RegisterViewDependency(db, v.handle, deps)
}
