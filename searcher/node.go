package searcher

import (
	"math"

	"pomcp/pomdp"
)

// The tree alternates two node kinds. A BeliefNode is either the root
// (nil parent, nil observation) or an observation node; both own a belief
// and their action children. An ActionNode owns its observation children
// and the running statistics the search accumulates.
//
// Action children live in a slice in model enumeration order, never a map,
// so selection and readout are deterministic.
type BeliefNode struct {
	parent *ActionNode // navigational only, nil at the root
	obs    pomdp.Observation
	belief pomdp.Belief
	sink   pomdp.StateConsumer // set once at construction when the belief consumes planner states
	visits float64

	actions  []pomdp.Action
	children []*ActionNode
}

type ActionNode struct {
	parent   *BeliefNode // navigational only
	action   pomdp.Action
	visits   float64
	value    float64 // incremental mean of backpropagated returns
	children map[pomdp.Observation]*BeliefNode
}

// NewRoot wraps a belief in a fresh, unexpanded root node.
func NewRoot(belief pomdp.Belief) *BeliefNode {
	return newBeliefNode(nil, nil, belief)
}

func newBeliefNode(parent *ActionNode, obs pomdp.Observation, belief pomdp.Belief) *BeliefNode {
	node := &BeliefNode{
		parent: parent,
		obs:    obs,
		belief: belief,
	}
	if sink, ok := belief.(pomdp.StateConsumer); ok {
		node.sink = sink
	}
	return node
}

// expand creates one action child per candidate action, seeded with the
// model's priors. Children are created in a batch on first visit.
func (h *BeliefNode) expand(actions []pomdp.Action, model pomdp.Model) {
	h.actions = actions
	h.children = make([]*ActionNode, len(actions))
	for i, a := range actions {
		prior := model.Prior(a)
		h.children[i] = &ActionNode{
			parent:   h,
			action:   a,
			visits:   prior.Visits,
			value:    prior.Value,
			children: make(map[pomdp.Observation]*BeliefNode),
		}
	}
}

func (h *BeliefNode) expanded() bool {
	return len(h.children) > 0
}

// pickAction returns the child maximizing the UCB-style score
// V + c*sqrt(ln(N)/n). On the very first expansion (node visit count at
// most 1) an unvisited child scores its seeded V, avoiding the log/zero
// singularity; past that point an unvisited child scores +Inf. Ties go to
// the last action in enumeration order (non-strict >= comparison).
func (h *BeliefNode) pickAction(c float64) *ActionNode {
	logN := math.Log(math.Max(1, h.visits))

	var best *ActionNode
	bestScore := math.Inf(-1)
	for _, child := range h.children {
		var score float64
		switch {
		case child.visits == 0 && h.visits <= 1:
			score = child.value
		case child.visits == 0:
			score = math.Inf(1)
		default:
			score = child.value + c*math.Sqrt(logN/child.visits)
		}
		if score >= bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

// bestAction reads off the action child with maximal value estimate. Same
// tie-break as selection: equal values favor the later action.
func (h *BeliefNode) bestAction() (pomdp.Action, error) {
	if !h.expanded() {
		return nil, ErrNoActions
	}

	best := h.children[0]
	for _, child := range h.children[1:] {
		if child.value >= best.value {
			best = child
		}
	}
	return best.action, nil
}

// child returns the action child for a, or nil if a was never expanded.
func (h *BeliefNode) child(a pomdp.Action) *ActionNode {
	for i, action := range h.actions {
		if action == a {
			return h.children[i]
		}
	}
	return nil
}

func (h *BeliefNode) Belief() pomdp.Belief {
	return h.belief
}

func (h *BeliefNode) Observation() pomdp.Observation {
	return h.obs
}

func (h *BeliefNode) Visits() float64 {
	return h.visits
}

// addChild attaches a new observation child keyed by obs.
func (n *ActionNode) addChild(obs pomdp.Observation, belief pomdp.Belief) *BeliefNode {
	node := newBeliefNode(n, obs, belief)
	n.children[obs] = node
	return node
}

func (n *ActionNode) Action() pomdp.Action {
	return n.action
}

func (n *ActionNode) Visits() float64 {
	return n.visits
}

func (n *ActionNode) Value() float64 {
	return n.value
}
