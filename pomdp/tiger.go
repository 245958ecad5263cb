package pomdp

import "golang.org/x/exp/rand"

// The tiger problem: a tiger hides behind one of two doors. Listening is
// cheap and gives a noisy hint; opening the wrong door is expensive. The
// hidden state never becomes observable directly, which makes the problem
// a minimal end-to-end exercise for belief tracking.

type TigerState string

type TigerAction string

type TigerObservation string

const (
	TigerLeft  TigerState = "tiger-left"
	TigerRight TigerState = "tiger-right"

	Listen    TigerAction = "listen"
	OpenLeft  TigerAction = "open-left"
	OpenRight TigerAction = "open-right"

	GrowlLeft  TigerObservation = "growl-left"
	GrowlRight TigerObservation = "growl-right"
	DoorOpened TigerObservation = "door-opened"
)

const (
	listenReward   = -1.0
	treasureReward = 10.0
	tigerPenalty   = -100.0
)

// Tiger implements Model with the standard reward structure. After a door
// is opened the tiger is re-seated uniformly, so episodes continue until
// the engine's step cap.
type Tiger struct {
	// Noise is the probability that listening growls from the wrong door.
	Noise float64
	// RolloutHorizon bounds the random-playout leaf estimator.
	RolloutHorizon int
}

func NewTiger() *Tiger {
	return &Tiger{Noise: 0.15, RolloutHorizon: 10}
}

func (t *Tiger) Discount() float64 {
	return 0.95
}

func (t *Tiger) IsTerminal(s State) bool {
	return false
}

func (t *Tiger) Step(s State, a Action, rng *rand.Rand) (State, Observation, float64) {
	state := s.(TigerState)
	switch a.(TigerAction) {
	case Listen:
		obs := GrowlLeft
		if state == TigerRight {
			obs = GrowlRight
		}
		if rng.Float64() < t.Noise { // Growl from the wrong door
			obs = otherGrowl(obs)
		}
		return state, obs, listenReward
	case OpenLeft:
		reward := treasureReward
		if state == TigerLeft {
			reward = tigerPenalty
		}
		return reseat(rng), DoorOpened, reward
	case OpenRight:
		reward := treasureReward
		if state == TigerRight {
			reward = tigerPenalty
		}
		return reseat(rng), DoorOpened, reward
	default:
		panic("unexpected tiger action")
	}
}

func (t *Tiger) Actions(s State, max int) []Action {
	actions := []Action{Listen, OpenLeft, OpenRight}
	if max > 0 && max < len(actions) {
		return actions[:max]
	}
	return actions
}

func (t *Tiger) InitialBelief() Belief {
	return NewParticles(TigerLeft, TigerRight)
}

// Rollout plays uniformly random actions to the horizon and returns the
// discounted return. Crude, but unbiased enough to seed leaf values.
func (t *Tiger) Rollout(s State, depth int, rng *rand.Rand) float64 {
	state := s.(TigerState)
	actions := t.Actions(state, 0)
	total := 0.0
	weight := 1.0
	for i := 0; i < t.RolloutHorizon; i++ {
		a := actions[rng.Intn(len(actions))]
		next, _, reward := t.Step(state, a, rng)
		total += weight * reward
		weight *= t.Discount()
		state = next.(TigerState)
	}
	return total
}

func (t *Tiger) Prior(a Action) NodePrior {
	return NodePrior{}
}

func otherGrowl(o TigerObservation) TigerObservation {
	if o == GrowlLeft {
		return GrowlRight
	}
	return GrowlLeft
}

func reseat(rng *rand.Rand) TigerState {
	if rng.Intn(2) == 0 {
		return TigerLeft
	}
	return TigerRight
}
