package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pomcp/agent"
	"pomcp/engine"
	"pomcp/pomdp"
	"pomcp/searcher"
)

var (
	benchBudgets  []int
	benchEpisodes int
	benchSteps    int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Sweep simulation budgets on the tiger problem and report returns",
	RunE: func(cmd *cobra.Command, args []string) error {
		model := pomdp.NewTiger()
		if solver.Reinvigorator == "" || solver.Reinvigorator == "none" {
			solver.Reinvigorator = "static"
		}

		fmt.Printf("Running budget sweep (%d episodes each)...\n", benchEpisodes)
		for _, budget := range benchBudgets {
			total := 0.0
			for i := 0; i < benchEpisodes; i++ {
				options, err := solver.Options(pomdp.TigerLeft, pomdp.TigerRight)
				if err != nil {
					return err
				}
				options = append(options, searcher.WithQueries(budget))

				ag := agent.New(model, searcher.New(model, options...))
				e := engine.NewLocal(model, ag,
					engine.WithMaxSteps(benchSteps),
					engine.WithWorldSeed(solver.Seed+uint64(i)))

				metrics, err := e.Run()
				if err != nil {
					return err
				}
				total += metrics.Return
			}
			fmt.Printf("budget %6d: mean discounted return %8.3f\n",
				budget, total/float64(benchEpisodes))
		}
		return nil
	},
}

func init() {
	benchCmd.Flags().IntSliceVar(&benchBudgets, "budgets", []int{100, 500, 1000, 5000}, "simulation budgets to sweep")
	benchCmd.Flags().IntVar(&benchEpisodes, "episodes", 5, "episodes per budget")
	benchCmd.Flags().IntVar(&benchSteps, "steps", 20, "real-world decisions per episode")
	rootCmd.AddCommand(benchCmd)
}
