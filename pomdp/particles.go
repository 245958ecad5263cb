package pomdp

import (
	"errors"

	"golang.org/x/exp/rand"
)

// ErrEmptyBelief is returned when sampling from a depleted particle
// collection.
var ErrEmptyBelief = errors.New("cannot sample from an empty particle collection")

// Particles approximates a belief as a multiset of sampled states.
// Duplicates are allowed; order is irrelevant for sampling but kept stable
// for reproducibility under a seeded sampler.
type Particles struct {
	states []State
}

func NewParticles(states ...State) *Particles {
	p := &Particles{states: make([]State, len(states))}
	copy(p.states, states)
	return p
}

func (p *Particles) Add(s State) {
	p.states = append(p.states, s)
}

// AddPlannerState makes Particles a StateConsumer: every planner-simulated
// state through the owning node lands here.
func (p *Particles) AddPlannerState(s State) {
	p.Add(s)
}

func (p *Particles) Sample(rng *rand.Rand) (State, error) {
	if len(p.states) == 0 {
		return nil, ErrEmptyBelief
	}
	return p.states[rng.Intn(len(p.states))], nil
}

func (p *Particles) Len() int {
	return len(p.states)
}

// Depleted reports whether the collection has run out of particles, e.g.
// after filtering or branching.
func (p *Particles) Depleted() bool {
	return len(p.states) == 0
}

// States returns a copy of the underlying multiset.
func (p *Particles) States() []State {
	out := make([]State, len(p.states))
	copy(out, p.states)
	return out
}
