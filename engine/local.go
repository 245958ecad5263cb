package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"pomcp/agent"
	"pomcp/experiments"
	"pomcp/pomdp"
)

// Local runs episodes of a model against an agent in-process: the engine
// keeps the hidden true state, the agent only ever sees actions and
// observations.
type Local struct {
	model    pomdp.Model
	agent    *agent.Agent
	maxSteps int
	rng      *rand.Rand
}

type LocalOption func(e *Local)

// WithMaxSteps caps the number of real-world decisions per episode. Models
// without terminal states rely on this cap.
func WithMaxSteps(steps int) LocalOption {
	return func(e *Local) {
		if steps > 0 {
			e.maxSteps = steps
		}
	}
}

// WithWorldSeed fixes the randomness of the real-world transitions,
// independent of the planner's seed.
func WithWorldSeed(seed uint64) LocalOption {
	return func(e *Local) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

func NewLocal(model pomdp.Model, ag *agent.Agent, options ...LocalOption) *Local {
	e := &Local{
		model:    model,
		agent:    ag,
		maxSteps: 100,
		rng:      rand.New(rand.NewSource(1)),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes one episode: decide, step the real world, advance the
// belief, until a terminal state or the step cap.
func (e *Local) Run() (experiments.EpisodeMetrics, error) {
	metrics := experiments.EpisodeMetrics{StartTime: time.Now()}

	state, err := e.model.InitialBelief().Sample(e.rng)
	if err != nil {
		return metrics, fmt.Errorf("drawing initial state: %w", err)
	}

	discount := e.model.Discount()
	weight := 1.0
	for step := 0; step < e.maxSteps && !e.model.IsTerminal(state); step++ {
		action, err := e.agent.Act()
		if err != nil {
			return metrics, fmt.Errorf("step %d: %w", step, err)
		}

		next, obs, reward := e.model.Step(state, action, e.rng)
		log.Info().
			Int("step", step).
			Str("action", fmt.Sprint(action)).
			Str("observation", fmt.Sprint(obs)).
			Float64("reward", reward).
			Msg("decision")

		if err := e.agent.Observe(action, obs); err != nil {
			return metrics, fmt.Errorf("step %d: %w", step, err)
		}

		search := e.agent.Planner().Metrics()
		metrics.Decisions = append(metrics.Decisions, experiments.DecisionMetrics{
			Step:        step,
			Action:      fmt.Sprint(action),
			Observation: fmt.Sprint(obs),
			Reward:      reward,
			Queries:     search.Queries,
			Rollouts:    search.Rollouts,
			SearchDepth: search.MaxDepth,
			Duration:    search.Duration,
		})
		metrics.Return += weight * reward
		weight *= discount
		state = next
	}

	metrics.EndTime = time.Now()
	log.Info().Msgf("episode over: %s", metrics)
	return metrics, nil
}
