package searcher

import "pomcp/pomdp"

// Reinvigorator repopulates particle collections the search could not fill
// on its own. Both operations must be deterministic given their inputs
// plus any explicit randomness source held by the implementation, and must
// return particle sets consistent with having taken a and observed o from
// old's belief.
type Reinvigorator interface {
	// Reinvigorate refills an existing but depleted collection.
	Reinvigorate(depleted *pomdp.Particles, old *BeliefNode, a pomdp.Action, o pomdp.Observation) (*pomdp.Particles, error)
	// HandleUnseenObservation synthesizes an initial particle set for an
	// observation that has no child in the tree at all.
	HandleUnseenObservation(old *BeliefNode, a pomdp.Action, o pomdp.Observation) (*pomdp.Particles, error)
}

// StaticReinvigorator is the domain-naive baseline: it repopulates with a
// fixed set of representative states regardless of the action/observation
// pair. Domain-aware implementations should bias toward states consistent
// with the transition and observation model instead.
type StaticReinvigorator struct {
	States []pomdp.State
}

func (s *StaticReinvigorator) Reinvigorate(depleted *pomdp.Particles, old *BeliefNode, a pomdp.Action, o pomdp.Observation) (*pomdp.Particles, error) {
	return pomdp.NewParticles(s.States...), nil
}

func (s *StaticReinvigorator) HandleUnseenObservation(old *BeliefNode, a pomdp.Action, o pomdp.Observation) (*pomdp.Particles, error) {
	return pomdp.NewParticles(s.States...), nil
}
