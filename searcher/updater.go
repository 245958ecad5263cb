package searcher

import (
	"golang.org/x/exp/rand"

	"github.com/rs/zerolog/log"

	"pomcp/pomdp"
)

// Updater converts a prior belief plus an action/observation pair into a
// posterior. It is consulted in two places: inside the tree, when a new
// observation branch is created during simulation, and between real-world
// decisions, when the root must move to its chosen child.
type Updater interface {
	// BranchBelief returns the belief for a newly created observation
	// node. It must not mutate prior.
	BranchBelief(prior pomdp.Belief, a pomdp.Action, o pomdp.Observation) (pomdp.Belief, error)
	// Advance returns the node to use as the next root after the agent
	// really took a and observed o from root.
	Advance(root *BeliefNode, a pomdp.Action, o pomdp.Observation, r Reinvigorator) (*BeliefNode, error)
}

// TreeUpdater is the default updater: the tree's belief nodes already
// encode the particle-filtered posterior from simulation, so advancing
// simply recycles the existing child node. New observation branches start
// with an empty particle collection that fills up from planner-simulated
// states on later traversals.
type TreeUpdater struct{}

func (TreeUpdater) BranchBelief(prior pomdp.Belief, a pomdp.Action, o pomdp.Observation) (pomdp.Belief, error) {
	return pomdp.NewParticles(), nil
}

func (TreeUpdater) Advance(root *BeliefNode, a pomdp.Action, o pomdp.Observation, r Reinvigorator) (*BeliefNode, error) {
	child := root.child(a)

	var node *BeliefNode
	if child != nil {
		node = child.children[o]
	}

	if node == nil { // Observation never simulated (or pruned)
		if r == nil {
			return nil, &ParticleDepletionError{Action: a, Observation: o}
		}
		particles, err := r.HandleUnseenObservation(root, a, o)
		if err != nil {
			return nil, err
		}
		if particles == nil || particles.Depleted() {
			return nil, &ReinvigorationError{Action: a, Observation: o,
				Reason: "unseen-observation handler returned an empty particle collection"}
		}
		log.Warn().Msgf("observation %v under action %v was never simulated; synthesized %d particles", o, a, particles.Len())
		node = newBeliefNode(nil, o, particles)
		if child != nil {
			child.children[o] = node
		}
		return node, nil
	}

	if particles, ok := node.belief.(*pomdp.Particles); ok && particles.Depleted() {
		if r == nil {
			return nil, &ParticleDepletionError{Action: a, Observation: o}
		}
		refilled, err := r.Reinvigorate(particles, root, a, o)
		if err != nil {
			return nil, err
		}
		if refilled == nil || refilled.Depleted() {
			return nil, &ReinvigorationError{Action: a, Observation: o,
				Reason: "reinvigorator returned an empty particle collection"}
		}
		node.belief = refilled
		node.sink = refilled
	}

	node.parent = nil // Detach the recycled subtree as the new root
	return node, nil
}

// NoopUpdater tracks no belief inside the tree. Nodes carry a NoBelief
// marker; real external observations must be handled by a different,
// externally supplied updater, so Advance fails.
type NoopUpdater struct{}

func (NoopUpdater) BranchBelief(prior pomdp.Belief, a pomdp.Action, o pomdp.Observation) (pomdp.Belief, error) {
	return NoBelief{}, nil
}

func (NoopUpdater) Advance(root *BeliefNode, a pomdp.Action, o pomdp.Observation, r Reinvigorator) (*BeliefNode, error) {
	return nil, ErrNoBelief
}

// NoBelief is the marker the no-op updater attaches to tree nodes.
type NoBelief struct{}

func (NoBelief) Sample(rng *rand.Rand) (pomdp.State, error) {
	return nil, ErrNoBelief
}

// UpdaterFunc adapts an exact or analytic filter to the Updater interface.
// The same function computes in-tree branch beliefs and, on advance, the
// next root's belief from the current root's.
type UpdaterFunc func(prior pomdp.Belief, a pomdp.Action, o pomdp.Observation) (pomdp.Belief, error)

func (f UpdaterFunc) BranchBelief(prior pomdp.Belief, a pomdp.Action, o pomdp.Observation) (pomdp.Belief, error) {
	return f(prior, a, o)
}

func (f UpdaterFunc) Advance(root *BeliefNode, a pomdp.Action, o pomdp.Observation, r Reinvigorator) (*BeliefNode, error) {
	posterior, err := f(root.belief, a, o)
	if err != nil {
		return nil, err
	}
	return NewRoot(posterior), nil
}
