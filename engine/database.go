// Package engine owns the Database type: relation/view instance
// lifecycle, the recalculation protocol, and dependency discovery. The
// expression algebra (package algebra) implements the Expr interface
// defined here; Database never imports algebra, which keeps the two
// packages' dependency in one direction.
package engine

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/wbrown/deltarel/reltuple"
)

// Expr is satisfied by every expression node (Select, Project, Union,
// Relation, View, ...). Collect implements the recent-delta strategy,
// CollectList the stable-batch-list strategy, and Dependencies the
// dependency-discovery walk (see spec §4.5 and §4.7).
type Expr[T any] interface {
	Collect(db *Database) (reltuple.Tuples[T], error)
	CollectList(db *Database) ([]reltuple.Tuples[T], error)
	Dependencies(db *Database, deps *DependencySet) error
}

// RelationHandle names a relation instance of a specific tuple type.
type RelationHandle[T any] struct {
	name string
	typ  reflect.Type
}

// Name returns the relation's registered name.
func (h RelationHandle[T]) Name() string { return h.name }

// ViewHandle identifies a materialized view by its monotonic id.
type ViewHandle[T any] struct {
	id  uint64
	typ reflect.Type
}

// ID returns the view's database-assigned id.
func (h ViewHandle[T]) ID() uint64 { return h.id }

type relKey struct {
	name string
	typ  reflect.Type
}

// Database owns every relation and view instance and routes inserts,
// recalculation, and evaluation. The zero value is ready to use.
type Database struct {
	relations  map[relKey]any // any holds *relationInstance[T]
	views      map[uint64]any // any holds *viewInstance[T]
	nextViewID uint64
	gen        uint64 // bumped once per Evaluate call; dedupes recalculation within a round
}

// NewDatabase returns an empty Database.
func NewDatabase() *Database {
	return &Database{
		relations: make(map[relKey]any),
		views:     make(map[uint64]any),
	}
}

type relationInstance[T any] struct {
	inst    *instance[T]
	lastGen uint64
}

func (r *relationInstance[T]) recalc(db *Database) error {
	if r.lastGen == db.gen {
		return nil
	}
	r.lastGen = db.gen
	r.inst.recalculate(r.inst.mergedToAdd())
	return nil
}

func (r *relationInstance[T]) tierSizes() (toAdd, recent, stable int) {
	return r.inst.sizes()
}

type viewInstance[T any] struct {
	inst    *instance[T]
	expr    Expr[T]
	lastGen uint64
}

func (v *viewInstance[T]) recalcWithDB(db *Database) error {
	if v.lastGen == db.gen {
		return nil
	}
	v.lastGen = db.gen

	inner := NewDependencySet()
	if err := v.expr.Dependencies(db, inner); err != nil {
		return err
	}
	if err := inner.Recalculate(db); err != nil {
		return err
	}
	delta, err := v.expr.Collect(db)
	if err != nil {
		return err
	}
	v.inst.recalculate(delta)
	return nil
}

func (v *viewInstance[T]) tierSizes() (toAdd, recent, stable int) {
	return v.inst.sizes()
}

func tupleType[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddRelation registers a new, empty relation. It fails with
// ErrInstanceExists if a relation of the same (name, T) already exists.
func AddRelation[T any](db *Database, name string, cmp func(a, b T) int) (RelationHandle[T], error) {
	typ := tupleType[T]()
	key := relKey{name: name, typ: typ}
	if db.relations == nil {
		db.relations = make(map[relKey]any)
	}
	if _, exists := db.relations[key]; exists {
		return RelationHandle[T]{}, fmt.Errorf("relation %q: %w", name, ErrInstanceExists)
	}
	db.relations[key] = &relationInstance[T]{inst: newInstance[T](cmp)}
	return RelationHandle[T]{name: name, typ: typ}, nil
}

func lookupRelation[T any](db *Database, h RelationHandle[T]) (*relationInstance[T], error) {
	key := relKey{name: h.name, typ: h.typ}
	v, ok := db.relations[key]
	if !ok {
		return nil, fmt.Errorf("relation %q: %w", h.name, ErrUnknownRelation)
	}
	ri, ok := v.(*relationInstance[T])
	if !ok {
		return nil, fmt.Errorf("relation %q: %w", h.name, ErrUnknownRelation)
	}
	return ri, nil
}

func lookupView[T any](db *Database, h ViewHandle[T]) (*viewInstance[T], error) {
	v, ok := db.views[h.id]
	if !ok {
		return nil, fmt.Errorf("view %d: %w", h.id, ErrUnknownView)
	}
	vi, ok := v.(*viewInstance[T])
	if !ok {
		return nil, fmt.Errorf("view %d: %w", h.id, ErrUnknownView)
	}
	return vi, nil
}

// Insert appends batch to the relation's to_add buffer. Never blocks,
// never fails except on an unknown handle.
func Insert[T any](db *Database, h RelationHandle[T], batch reltuple.Tuples[T]) error {
	ri, err := lookupRelation(db, h)
	if err != nil {
		return err
	}
	ri.inst.insert(batch)
	return nil
}

// StoreView registers a materialized view over expr. The engine walks
// expr (dependency discovery) to verify every referenced handle belongs
// to this database before issuing a fresh, never-reused id.
func StoreView[T any](db *Database, expr Expr[T], cmp func(a, b T) int) (ViewHandle[T], error) {
	deps := NewDependencySet()
	if err := expr.Dependencies(db, deps); err != nil {
		return ViewHandle[T]{}, err
	}
	if db.views == nil {
		db.views = make(map[uint64]any)
	}
	db.nextViewID++
	id := db.nextViewID
	typ := tupleType[T]()
	db.views[id] = &viewInstance[T]{inst: newInstance[T](cmp), expr: expr}
	return ViewHandle[T]{id: id, typ: typ}, nil
}

// Evaluate returns the current complete extension of expr over the
// database: dependencies are recalculated first, in discovery order,
// each view after the relations and views its own expression
// references, then the incremental delta is merged with every stable
// batch already on record.
func Evaluate[T any](db *Database, expr Expr[T]) (reltuple.Tuples[T], error) {
	db.gen++

	deps := NewDependencySet()
	if err := expr.Dependencies(db, deps); err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}
	if err := deps.Recalculate(db); err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}

	result, err := expr.Collect(db)
	if err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}
	lists, err := expr.CollectList(db)
	if err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}
	for _, batch := range lists {
		result = result.Merge(batch)
	}
	return result, nil
}

// RegisterRelationDependency validates that h belongs to db and, if so,
// records a recalculation task for it in deps. Algebra's Relation node
// calls this from its Dependencies method.
func RegisterRelationDependency[T any](db *Database, h RelationHandle[T], deps *DependencySet) error {
	ri, err := lookupRelation(db, h)
	if err != nil {
		return err
	}
	deps.add(depKey{kind: depRelation, name: h.name, typ: h.typ}, func(db *Database) error {
		return ri.recalc(db)
	})
	return nil
}

// RegisterViewDependency validates that h belongs to db and, if so,
// records a recalculation task for it in deps. Algebra's View node
// calls this from its Dependencies method.
func RegisterViewDependency[T any](db *Database, h ViewHandle[T], deps *DependencySet) error {
	vi, err := lookupView(db, h)
	if err != nil {
		return err
	}
	deps.add(depKey{kind: depView, id: h.id}, func(db *Database) error {
		return vi.recalcWithDB(db)
	})
	return nil
}

// RelationRecent returns a relation's current recent tier.
func RelationRecent[T any](db *Database, h RelationHandle[T]) (reltuple.Tuples[T], error) {
	ri, err := lookupRelation(db, h)
	if err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}
	return ri.inst.recent, nil
}

// RelationStable returns a relation's current stable batches.
func RelationStable[T any](db *Database, h RelationHandle[T]) ([]reltuple.Tuples[T], error) {
	ri, err := lookupRelation(db, h)
	if err != nil {
		return nil, err
	}
	return ri.inst.stable, nil
}

// ViewRecent returns a view's current recent tier.
func ViewRecent[T any](db *Database, h ViewHandle[T]) (reltuple.Tuples[T], error) {
	vi, err := lookupView(db, h)
	if err != nil {
		var zero reltuple.Tuples[T]
		return zero, err
	}
	return vi.inst.recent, nil
}

// ViewStable returns a view's current stable batches.
func ViewStable[T any](db *Database, h ViewHandle[T]) ([]reltuple.Tuples[T], error) {
	vi, err := lookupView(db, h)
	if err != nil {
		return nil, err
	}
	return vi.inst.stable, nil
}

// InstanceSizes reports a relation's current (toAdd, recent, stable)
// tuple counts, for introspection.
func InstanceSizes[T any](db *Database, h RelationHandle[T]) (toAdd, recent, stable int, err error) {
	ri, err := lookupRelation(db, h)
	if err != nil {
		return 0, 0, 0, err
	}
	toAdd, recent, stable = ri.inst.sizes()
	return
}

// tierSizer is satisfied by relationInstance[T] and viewInstance[T] for
// any T; it lets Stats report per-instance tier sizes without itself
// needing to be generic.
type tierSizer interface {
	tierSizes() (toAdd, recent, stable int)
}

// RelationStats reports one relation's name and current tier sizes.
type RelationStats struct {
	Name                  string
	ToAdd, Recent, Stable int
}

// ViewStats reports one view's id and current tier sizes.
type ViewStats struct {
	ID                    uint64
	ToAdd, Recent, Stable int
}

// Stats reports every registered relation and view together with its
// current (toAdd, recent, stable) tuple counts.
type Stats struct {
	Relations []RelationStats
	Views     []ViewStats
}

// Stats reports the database's current relations and views, each with
// its per-instance tier sizes.
func (db *Database) Stats() Stats {
	var stats Stats
	for key, v := range db.relations {
		toAdd, recent, stable := v.(tierSizer).tierSizes()
		stats.Relations = append(stats.Relations, RelationStats{
			Name: key.name, ToAdd: toAdd, Recent: recent, Stable: stable,
		})
	}
	for id, v := range db.views {
		toAdd, recent, stable := v.(tierSizer).tierSizes()
		stats.Views = append(stats.Views, ViewStats{
			ID: id, ToAdd: toAdd, Recent: recent, Stable: stable,
		})
	}
	sort.Slice(stats.Relations, func(i, j int) bool { return stats.Relations[i].Name < stats.Relations[j].Name })
	sort.Slice(stats.Views, func(i, j int) bool { return stats.Views[i].ID < stats.Views[j].ID })
	return stats
}
