package searcher

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"pomcp/pomdp"
)

type Option func(p *POMCP)

// POMCP runs budgeted Monte Carlo tree search over belief nodes: each
// query samples a state from the root belief, simulates it down the tree
// and backpropagates the discounted return into the node statistics.
type POMCP struct {
	model         pomdp.Model
	queries       int
	exploration   float64
	epsilon       float64
	maxDepth      int
	maxActions    int
	updater       Updater
	reinvigorator Reinvigorator
	rng           *rand.Rand
	metrics       MetricsCollector
	lastMetrics   SearchMetrics
}

// WithQueries sets the simulation budget per decision.
func WithQueries(queries int) Option {
	return func(p *POMCP) {
		p.queries = queries
	}
}

// WithExploration sets the exploration constant c in the UCB score.
func WithExploration(c float64) Option {
	return func(p *POMCP) {
		if c >= 0 {
			p.exploration = c
		}
	}
}

// WithEpsilon sets the minimum significant discount weight: a simulation
// stops once discount^depth drops below it.
func WithEpsilon(epsilon float64) Option {
	return func(p *POMCP) {
		if epsilon > 0 {
			p.epsilon = epsilon
		}
	}
}

// WithMaxDepth caps the recursion depth of a single simulation.
func WithMaxDepth(depth int) Option {
	return func(p *POMCP) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// WithMaxActions bounds sparse-action enumeration at expansion.
func WithMaxActions(max int) Option {
	return func(p *POMCP) {
		if max > 0 {
			p.maxActions = max
		}
	}
}

// WithUpdater selects the belief updater used for new observation branches
// and for advancing the root between real decisions.
func WithUpdater(u Updater) Option {
	return func(p *POMCP) {
		if u != nil {
			p.updater = u
		}
	}
}

// WithReinvigorator supplies the handler for depleted particle collections
// and never-simulated observations.
func WithReinvigorator(r Reinvigorator) Option {
	return func(p *POMCP) {
		p.reinvigorator = r
	}
}

// WithSeed fixes the random source for reproducible searches.
func WithSeed(seed uint64) Option {
	return func(p *POMCP) {
		p.rng = rand.New(rand.NewSource(seed))
	}
}

// WithMetrics enables search metric collection.
func WithMetrics() Option {
	return func(p *POMCP) {
		p.metrics = NewMetricsCollector()
	}
}

func New(model pomdp.Model, options ...Option) *POMCP {
	p := &POMCP{ // Default values
		model:       model,
		queries:     1000,
		exploration: math.Sqrt2,
		epsilon:     1e-7,
		maxDepth:    30,
		maxActions:  0, // Unbounded
		updater:     TreeUpdater{},
		rng:         rand.New(rand.NewSource(1)),
		metrics:     NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Search wraps belief in a fresh root node, runs the budget and returns
// the best immediate action together with the root for reuse.
func (p *POMCP) Search(belief pomdp.Belief) (pomdp.Action, *BeliefNode, error) {
	root := NewRoot(belief)
	action, err := p.SearchNode(root)
	return action, root, err
}

// SearchNode runs the simulation budget against an existing root, mutating
// the tree in place, and returns the root action with the best estimated
// value. The search is strictly sequential; the tree is private to the
// caller's decision sequence.
func (p *POMCP) SearchNode(root *BeliefNode) (pomdp.Action, error) {
	if p.queries <= 0 {
		return nil, ErrZeroBudget
	}

	p.metrics.Start()
	for i := 0; i < p.queries; i++ {
		state, err := root.belief.Sample(p.rng)
		if err != nil {
			return nil, fmt.Errorf("sampling root belief: %w", err)
		}
		if _, err := p.simulate(root, state, 0); err != nil {
			return nil, err
		}
		p.metrics.AddQuery()
	}
	p.lastMetrics = p.metrics.Complete()

	return root.bestAction()
}

// Advance moves the root across a real-world action/observation pair,
// returning the belief node to use as the next root.
func (p *POMCP) Advance(root *BeliefNode, a pomdp.Action, o pomdp.Observation) (*BeliefNode, error) {
	return p.updater.Advance(root, a, o, p.reinvigorator)
}

// Metrics returns the metrics of the most recent search.
func (p *POMCP) Metrics() SearchMetrics {
	return p.lastMetrics
}

// simulate is the recursive core. It selects an action by the UCB score,
// steps the model, recurses into the resulting observation node and
// backpropagates the return into h's statistics. On first visit it expands
// h's action children instead and returns a discounted rollout estimate.
func (p *POMCP) simulate(h *BeliefNode, s pomdp.State, depth int) (float64, error) {
	discount := p.model.Discount()
	weight := math.Pow(discount, float64(depth))
	if weight < p.epsilon || p.model.IsTerminal(s) || depth >= p.maxDepth {
		return 0, nil
	}

	if !h.expanded() {
		actions := p.model.Actions(s, p.maxActions)
		if len(actions) == 0 {
			return 0, fmt.Errorf("expanding node at depth %d: %w", depth, ErrNoActions)
		}
		h.expand(actions, p.model)
		p.metrics.AddRollout()
		return weight * p.model.Rollout(s, depth, p.rng), nil
	}

	child := h.pickAction(p.exploration)
	next, obs, reward := p.model.Step(s, child.action, p.rng)

	node, ok := child.children[obs]
	if !ok {
		belief, err := p.updater.BranchBelief(h.belief, child.action, obs)
		if err != nil {
			return 0, fmt.Errorf("branching on observation %v: %w", obs, err)
		}
		node = child.addChild(obs, belief)
	}

	future, err := p.simulate(node, next, depth+1)
	if err != nil {
		return 0, err
	}
	total := reward + discount*future

	if h.sink != nil {
		h.sink.AddPlannerState(s)
	}
	h.visits++
	child.visits++
	child.value += (total - child.value) / child.visits
	p.metrics.ObserveDepth(depth)

	return total, nil
}
