package agent

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"pomcp/pomdp"
	"pomcp/searcher"
)

// Agent owns the planner and the current root node, recycling the chosen
// subtree across real-world decisions.
type Agent struct {
	model   pomdp.Model
	planner *searcher.POMCP
	root    *searcher.BeliefNode
}

func New(model pomdp.Model, planner *searcher.POMCP) *Agent {
	return &Agent{
		model:   model,
		planner: planner,
	}
}

// Act searches from the current belief and returns the action with the
// best estimated value at the root.
func (a *Agent) Act() (pomdp.Action, error) {
	if a.root == nil {
		a.root = searcher.NewRoot(a.model.InitialBelief())
	}

	action, err := a.planner.SearchNode(a.root)
	if err != nil {
		return nil, fmt.Errorf("deciding next action: %w", err)
	}
	log.Debug().Msgf("agent decided on action %v after %d queries", action, a.planner.Metrics().Queries)
	return action, nil
}

// Observe advances the belief across the action the agent really took and
// the observation the world really emitted. The resulting node becomes
// the next search root.
func (a *Agent) Observe(action pomdp.Action, obs pomdp.Observation) error {
	if a.root == nil {
		return fmt.Errorf("observe before first decision")
	}

	root, err := a.planner.Advance(a.root, action, obs)
	if err != nil {
		return fmt.Errorf("advancing belief: %w", err)
	}
	a.root = root
	return nil
}

// Root exposes the current root node, mainly for inspection and tests.
func (a *Agent) Root() *searcher.BeliefNode {
	return a.root
}

func (a *Agent) Planner() *searcher.POMCP {
	return a.planner
}
