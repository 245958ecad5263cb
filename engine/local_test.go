package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"pomcp/agent"
	"pomcp/pomdp"
	"pomcp/searcher"
)

// walkModel pays 1 per step, emits a single observation and terminates
// once the true state reaches the goal.
type walkModel struct {
	goal int
}

func (m walkModel) Discount() float64 {
	return 0.5
}

func (m walkModel) IsTerminal(s pomdp.State) bool {
	return m.goal > 0 && s.(int) >= m.goal
}

func (m walkModel) Step(s pomdp.State, a pomdp.Action, rng *rand.Rand) (pomdp.State, pomdp.Observation, float64) {
	return s.(int) + 1, "tick", 1.0
}

func (m walkModel) Actions(s pomdp.State, max int) []pomdp.Action {
	return []pomdp.Action{"left", "right"}
}

func (m walkModel) InitialBelief() pomdp.Belief {
	return pomdp.NewParticles(0)
}

func (m walkModel) Rollout(s pomdp.State, depth int, rng *rand.Rand) float64 {
	return 0
}

func (m walkModel) Prior(a pomdp.Action) pomdp.NodePrior {
	return pomdp.NodePrior{}
}

func newTestEngine(model pomdp.Model, options ...LocalOption) *Local {
	planner := searcher.New(model,
		searcher.WithQueries(20),
		searcher.WithMaxDepth(3),
		searcher.WithSeed(3),
		searcher.WithMetrics(),
	)
	return NewLocal(model, agent.New(model, planner), options...)
}

func TestLocalRun(t *testing.T) {
	t.Run("stops at the step cap and accumulates the discounted return", func(t *testing.T) {
		e := newTestEngine(walkModel{}, WithMaxSteps(3), WithWorldSeed(1))

		metrics, err := e.Run()

		require.NoError(t, err)
		require.Len(t, metrics.Decisions, 3)
		require.InDelta(t, 1+0.5+0.25, metrics.Return, 1e-12)
	})

	t.Run("stops on a terminal state", func(t *testing.T) {
		// The true state deterministically reaches the goal after 2 steps
		e := newTestEngine(walkModel{goal: 2}, WithMaxSteps(10), WithWorldSeed(1))

		metrics, err := e.Run()

		require.NoError(t, err)
		require.Len(t, metrics.Decisions, 2)
	})

	t.Run("records search metrics per decision", func(t *testing.T) {
		e := newTestEngine(walkModel{}, WithMaxSteps(2), WithWorldSeed(1))

		metrics, err := e.Run()

		require.NoError(t, err)
		for _, decision := range metrics.Decisions {
			require.Equal(t, int64(20), decision.Queries)
			require.Equal(t, "tick", decision.Observation)
		}
	})
}
