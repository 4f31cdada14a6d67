package model

import "time"

type ProductFailure struct {
	ProductID string
	Err       error
}

// PropagationResult reports one propagation pass for a single entity.
type PropagationResult struct {
	Kind     EntityKind
	EntityID string
	// Products referencing the entity.
	Matched int
	// Products whose snapshot was rewritten.
	Affected int
	// Products already carrying the current snapshot.
	Unchanged int
	Errors    []ProductFailure
	Duration  time.Duration
}

func (r *PropagationResult) Failed() bool { return len(r.Errors) > 0 }

type RepairResult struct {
	Entities  int
	Affected  int
	Unchanged int
	Results   []*PropagationResult
	// Entities whose propagation could not even start.
	Errors []EntityFailure
}

type EntityFailure struct {
	Kind     EntityKind
	EntityID string
	Err      error
}
