package pomdp

import "golang.org/x/exp/rand"

// State, Action and Observation are opaque labels supplied by the problem
// model. Action and Observation values must have comparable dynamic types:
// the searcher keys child lookup by them.
type State any

type Action any

type Observation any

// NodePrior seeds a freshly created action node with domain knowledge.
// Zero values mean no prior.
type NodePrior struct {
	Visits float64
	Value  float64
}

// Model describes a decision problem to the searcher. Implementations must
// be safe to call repeatedly with the same inputs; all randomness goes
// through the rng argument so that simulations stay reproducible.
type Model interface {
	// Discount returns the per-step discount factor in (0, 1].
	Discount() float64
	// IsTerminal reports whether s ends the episode.
	IsTerminal(s State) bool
	// Step advances one transition, returning the successor state, the
	// emitted observation and the immediate reward.
	Step(s State, a Action, rng *rand.Rand) (next State, obs Observation, reward float64)
	// Actions enumerates candidate actions at s, at most max of them when
	// max > 0. The returned order is the searcher's tie-break order.
	Actions(s State, max int) []Action
	// InitialBelief returns the belief an episode starts from.
	InitialBelief() Belief
	// Rollout estimates the discounted future return of s at the given
	// search depth, e.g. by playing a fallback policy to a horizon.
	Rollout(s State, depth int, rng *rand.Rand) float64
	// Prior seeds the statistics of a newly expanded action node.
	Prior(a Action) NodePrior
}

// Belief represents uncertainty over the true state. A belief must be
// sampleable to produce a concrete state for simulation.
type Belief interface {
	Sample(rng *rand.Rand) (State, error)
}

// StateConsumer is an optional belief capability: a belief declaring it
// receives every state the planner simulates through its node, letting it
// piggy-back on planner simulations instead of running its own rollouts.
// The searcher checks for it once per node, not per push.
type StateConsumer interface {
	Belief
	AddPlannerState(s State)
}
