package main

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pomcp/agent"
	"pomcp/engine"
	"pomcp/experiments"
	"pomcp/pomdp"
	"pomcp/searcher"
)

var (
	runEpisodes int
	runSteps    int
	runQueries  int
	runOut      string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run episodes of the tiger problem with a POMCP agent",
	RunE: func(cmd *cobra.Command, args []string) error {
		if runQueries > 0 {
			solver.Queries = runQueries
		}
		if solver.Reinvigorator == "" || solver.Reinvigorator == "none" {
			// The naive fallback: reseat the tiger behind either door
			solver.Reinvigorator = "static"
		}
		options, err := solver.Options(pomdp.TigerLeft, pomdp.TigerRight)
		if err != nil {
			return err
		}
		options = append(options, searcher.WithMetrics())

		model := pomdp.NewTiger()

		var writer *experiments.Writer
		if runOut != "" {
			writer, err = experiments.NewWriter(runOut)
			if err != nil {
				return err
			}
			if err := writer.WriteSetup(experiments.Setup{
				Problem:   "tiger",
				Queries:   solver.Queries,
				Episodes:  runEpisodes,
				Seed:      solver.Seed,
				StartTime: time.Now(),
			}); err != nil {
				return err
			}
		}

		for i := 0; i < runEpisodes; i++ {
			ag := agent.New(model, searcher.New(model, options...))
			e := engine.NewLocal(model, ag,
				engine.WithMaxSteps(runSteps),
				engine.WithWorldSeed(solver.Seed+uint64(i)))

			metrics, err := e.Run()
			if err != nil {
				return err
			}
			log.Info().Msgf("episode %d: %s", i+1, metrics)

			if writer != nil {
				if err := writer.WriteEpisode(i+1, metrics); err != nil {
					return err
				}
			}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runEpisodes, "episodes", 1, "number of episodes to run")
	runCmd.Flags().IntVar(&runSteps, "steps", 20, "real-world decisions per episode")
	runCmd.Flags().IntVar(&runQueries, "queries", 0, "simulation budget per decision (overrides config)")
	runCmd.Flags().StringVar(&runOut, "out", "", "directory for per-episode CSV metrics")
	rootCmd.AddCommand(runCmd)
}
