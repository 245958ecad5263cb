package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"pomcp/pomdp"
)

type mockState string

type mockAction string

type mockObs string

// mockModel is a deterministic problem: rewards depend only on the action,
// every step emits the same observation, and the rollout estimator is a
// fixed function. Randomness is never consumed, so searches are exactly
// reproducible.
type mockModel struct {
	discount float64
	actions  []pomdp.Action
	rewards  map[pomdp.Action]float64
	obs      pomdp.Observation
	terminal func(s pomdp.State) bool
	rollout  func(s pomdp.State, depth int) float64
	stepFn   func() float64           // Overrides rewards when set
	obsFn    func() pomdp.Observation // Overrides obs when set
	priors   map[pomdp.Action]pomdp.NodePrior
	steps    int // Step invocations, for instrumentation
}

func newMockModel(actions ...pomdp.Action) *mockModel {
	return &mockModel{
		discount: 0.9,
		actions:  actions,
		rewards:  map[pomdp.Action]float64{},
		obs:      mockObs("o"),
	}
}

func (m *mockModel) Discount() float64 {
	return m.discount
}

func (m *mockModel) IsTerminal(s pomdp.State) bool {
	if m.terminal == nil {
		return false
	}
	return m.terminal(s)
}

func (m *mockModel) Step(s pomdp.State, a pomdp.Action, rng *rand.Rand) (pomdp.State, pomdp.Observation, float64) {
	m.steps++
	obs := m.obs
	if m.obsFn != nil {
		obs = m.obsFn()
	}
	if m.stepFn != nil {
		return s, obs, m.stepFn()
	}
	return s, obs, m.rewards[a]
}

func (m *mockModel) Actions(s pomdp.State, max int) []pomdp.Action {
	if max > 0 && max < len(m.actions) {
		return m.actions[:max]
	}
	return m.actions
}

func (m *mockModel) InitialBelief() pomdp.Belief {
	return stubBelief{state: mockState("s")}
}

func (m *mockModel) Rollout(s pomdp.State, depth int, rng *rand.Rand) float64 {
	if m.rollout == nil {
		return 0
	}
	return m.rollout(s, depth)
}

func (m *mockModel) Prior(a pomdp.Action) pomdp.NodePrior {
	return m.priors[a]
}

// stubBelief always samples the same state.
type stubBelief struct {
	state pomdp.State
}

func (b stubBelief) Sample(rng *rand.Rand) (pomdp.State, error) {
	return b.state, nil
}

func TestExpand(t *testing.T) {
	t.Run("creates one seeded child per action in enumeration order", func(t *testing.T) {
		model := newMockModel(mockAction("a"), mockAction("b"))
		model.priors = map[pomdp.Action]pomdp.NodePrior{
			mockAction("b"): {Visits: 2, Value: 0.5},
		}
		node := NewRoot(stubBelief{state: mockState("s")})

		node.expand(model.Actions(mockState("s"), 0), model)

		require.Len(t, node.children, 2, "Node should create all action children in a batch")
		require.Equal(t, mockAction("a"), node.children[0].action)
		require.Equal(t, mockAction("b"), node.children[1].action)
		require.Equal(t, 0.0, node.children[0].visits, "Unseeded child should start at zero")
		require.Equal(t, 2.0, node.children[1].visits, "Prior should seed the initial visit count")
		require.Equal(t, 0.5, node.children[1].value, "Prior should seed the initial value estimate")
		require.Empty(t, node.children[0].children, "Observation children must not be pre-populated")
	})
}

func TestPickAction(t *testing.T) {
	t.Run("first expansion scores unvisited children by their seeded value", func(t *testing.T) {
		node := &BeliefNode{
			visits: 1,
			actions: []pomdp.Action{
				mockAction("a"), mockAction("b"),
			},
		}
		node.children = []*ActionNode{
			{parent: node, action: mockAction("a"), value: 0.7},
			{parent: node, action: mockAction("b"), value: 0.2},
		}

		got := node.pickAction(1.0)

		require.Equal(t, mockAction("a"), got.action,
			"With zero visits and node visit count 1 the score is the seeded V")
	})

	t.Run("past the first expansion an unvisited child is chosen unconditionally", func(t *testing.T) {
		node := &BeliefNode{visits: 5}
		node.children = []*ActionNode{
			{parent: node, action: mockAction("a"), visits: 5, value: 100},
			{parent: node, action: mockAction("b")},
		}

		got := node.pickAction(1.0)

		require.Equal(t, mockAction("b"), got.action,
			"A zero-visit child scores +Inf once the node has been visited more than once")
	})

	t.Run("selects the max UCB score", func(t *testing.T) {
		// With c=0 the score reduces to V
		node := &BeliefNode{visits: 4}
		node.children = []*ActionNode{
			{parent: node, action: mockAction("a"), visits: 2, value: 0.9},
			{parent: node, action: mockAction("b"), visits: 2, value: 0.1},
		}

		got := node.pickAction(0)

		require.Equal(t, mockAction("a"), got.action)
	})

	t.Run("exploration bonus can overturn the value ordering", func(t *testing.T) {
		node := &BeliefNode{visits: 100}
		node.children = []*ActionNode{
			{parent: node, action: mockAction("rare"), visits: 1, value: 0.5},
			{parent: node, action: mockAction("common"), visits: 99, value: 0.6},
		}

		got := node.pickAction(2.0)

		require.Equal(t, mockAction("rare"), got.action,
			"A large exploration constant should favor the rarely tried action")
	})

	t.Run("ties favor the last action in enumeration order", func(t *testing.T) {
		node := &BeliefNode{visits: 4}
		node.children = []*ActionNode{
			{parent: node, action: mockAction("a"), visits: 2, value: 0.5},
			{parent: node, action: mockAction("b"), visits: 2, value: 0.5},
			{parent: node, action: mockAction("c"), visits: 2, value: 0.5},
		}

		got := node.pickAction(1.0)

		require.Equal(t, mockAction("c"), got.action)
	})
}

func TestBestAction(t *testing.T) {
	t.Run("returns the child with maximal value", func(t *testing.T) {
		node := &BeliefNode{}
		node.children = []*ActionNode{
			{parent: node, action: mockAction("a"), value: 0.3},
			{parent: node, action: mockAction("b"), value: 0.8},
			{parent: node, action: mockAction("c"), value: 0.1},
		}

		got, err := node.bestAction()

		require.NoError(t, err)
		require.Equal(t, mockAction("b"), got)
	})

	t.Run("ties favor the later child", func(t *testing.T) {
		node := &BeliefNode{}
		node.children = []*ActionNode{
			{parent: node, action: mockAction("a"), value: 0.8},
			{parent: node, action: mockAction("b"), value: 0.8},
		}

		got, err := node.bestAction()

		require.NoError(t, err)
		require.Equal(t, mockAction("b"), got)
	})

	t.Run("fails on an unexpanded node", func(t *testing.T) {
		node := NewRoot(stubBelief{state: mockState("s")})

		_, err := node.bestAction()

		require.ErrorIs(t, err, ErrNoActions)
	})
}

func TestStateConsumerCapability(t *testing.T) {
	t.Run("detected once at construction for particle beliefs", func(t *testing.T) {
		particles := pomdp.NewParticles(mockState("s"))

		node := NewRoot(particles)

		require.NotNil(t, node.sink, "Particles consume planner states")
	})

	t.Run("absent for plain beliefs", func(t *testing.T) {
		node := NewRoot(stubBelief{state: mockState("s")})

		require.Nil(t, node.sink)
	})
}
