package engine

import "errors"

// Sentinel errors returned by Database operations. Per the error
// taxonomy, no kind is recovered internally: every failure surfaces
// unchanged to the caller, usually wrapped with fmt.Errorf("...: %w").
var (
	// ErrInstanceExists is returned by AddRelation when a relation of
	// the same (name, T) is already registered.
	ErrInstanceExists = errors.New("engine: instance already exists")

	// ErrUnknownRelation is returned when a relation handle does not
	// belong to this database (wrong database, never registered, or
	// wrong tuple type).
	ErrUnknownRelation = errors.New("engine: unknown relation")

	// ErrUnknownView is returned when a view handle does not belong to
	// this database.
	ErrUnknownView = errors.New("engine: unknown view")
)
