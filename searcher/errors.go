package searcher

import (
	"errors"
	"fmt"

	"pomcp/pomdp"
)

var (
	// ErrNoActions means action enumeration produced an empty set, or a
	// best-action readout was attempted on an unexpanded node.
	ErrNoActions = errors.New("model produced an empty action set")

	// ErrZeroBudget means a search was requested with no simulation budget.
	ErrZeroBudget = errors.New("search requires a positive simulation budget")

	// ErrNoBelief means a node carries the no-op updater's marker belief,
	// which cannot be sampled or advanced.
	ErrNoBelief = errors.New("node carries no belief")
)

// ParticleDepletionError is raised when advancing the root needs particles
// that simulation never produced: either the observation branch is missing
// from the tree, or its particle collection is empty. Callers can match it
// with errors.As and retry with adjusted configuration.
type ParticleDepletionError struct {
	Action      pomdp.Action
	Observation pomdp.Observation
}

func (e *ParticleDepletionError) Error() string {
	return fmt.Sprintf(
		"particle depletion advancing through action %v and observation %v: "+
			"increase the simulation budget, configure a reinvigorator, "+
			"or use a belief representation that does not rely on tree particles",
		e.Action, e.Observation)
}

// ReinvigorationError means a reinvigorator returned an empty or invalid
// particle collection. This is a configuration or programming error, fatal
// to the current decision.
type ReinvigorationError struct {
	Action      pomdp.Action
	Observation pomdp.Observation
	Reason      string
}

func (e *ReinvigorationError) Error() string {
	return fmt.Sprintf("reinvigoration for action %v, observation %v failed: %s",
		e.Action, e.Observation, e.Reason)
}
