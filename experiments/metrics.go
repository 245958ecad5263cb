package experiments

import (
	"fmt"
	"time"
)

// DecisionMetrics records one real-world decision of an episode.
type DecisionMetrics struct {
	Step        int
	Action      string
	Observation string
	Reward      float64
	Queries     int64
	Rollouts    int64
	SearchDepth int64
	Duration    time.Duration
}

// EpisodeMetrics aggregates a full episode.
type EpisodeMetrics struct {
	Decisions []DecisionMetrics
	Return    float64 // Discounted return over the episode
	StartTime time.Time
	EndTime   time.Time
}

func (e EpisodeMetrics) String() string {
	return fmt.Sprintf("%d decisions, discounted return %.3f, wall time %s",
		len(e.Decisions), e.Return, e.EndTime.Sub(e.StartTime))
}
