package main

import (
	"fmt"

	"pomcp/agent"
	"pomcp/engine"
	"pomcp/pomdp"
	"pomcp/searcher"
)

// Minimal end-to-end demo: one tiger episode with default settings. The
// cmd/pomcp binary exposes the full CLI.
func main() {
	model := pomdp.NewTiger()
	planner := searcher.New(model,
		searcher.WithQueries(2000),
		searcher.WithMaxDepth(20),
		searcher.WithSeed(42),
		searcher.WithReinvigorator(&searcher.StaticReinvigorator{
			States: []pomdp.State{pomdp.TigerLeft, pomdp.TigerRight},
		}),
	)

	e := engine.NewLocal(model, agent.New(model, planner),
		engine.WithMaxSteps(20),
		engine.WithWorldSeed(7),
	)

	metrics, err := e.Run()
	if err != nil {
		fmt.Printf("episode failed: %v\n", err)
		return
	}
	fmt.Printf("episode: %s\n", metrics)
}
