package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pomcp/pomdp"
	"pomcp/searcher"
)

// Solver is the YAML-configurable surface of the planner.
type Solver struct {
	Queries     int     `yaml:"queries"`
	Exploration float64 `yaml:"exploration"`
	Epsilon     float64 `yaml:"epsilon"`
	MaxDepth    int     `yaml:"maxDepth"`
	MaxActions  int     `yaml:"maxActions"`
	Seed        uint64  `yaml:"seed"`
	// Updater selects the belief updater: "tree" (default) or "noop".
	Updater string `yaml:"updater"`
	// Reinvigorator selects the particle reinvigorator: "none" (default)
	// or "static". The static variant repopulates from the representative
	// states passed to Options.
	Reinvigorator string `yaml:"reinvigorator"`
}

func Default() Solver {
	return Solver{
		Queries:       1000,
		Exploration:   1.4,
		Epsilon:       1e-7,
		MaxDepth:      30,
		Seed:          1,
		Updater:       "tree",
		Reinvigorator: "none",
	}
}

func Load(path string) (Solver, error) {
	solver := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return solver, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &solver); err != nil {
		return solver, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := solver.Validate(); err != nil {
		return solver, fmt.Errorf("config %s: %w", path, err)
	}
	return solver, nil
}

func (s Solver) Validate() error {
	if s.Queries <= 0 {
		return fmt.Errorf("queries must be positive, got %d", s.Queries)
	}
	if s.Exploration < 0 {
		return fmt.Errorf("exploration must be non-negative, got %g", s.Exploration)
	}
	if s.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %g", s.Epsilon)
	}
	if s.MaxDepth <= 0 {
		return fmt.Errorf("maxDepth must be positive, got %d", s.MaxDepth)
	}
	if s.MaxActions < 0 {
		return fmt.Errorf("maxActions must be non-negative, got %d", s.MaxActions)
	}
	switch s.Updater {
	case "", "tree", "noop":
	default:
		return fmt.Errorf("unknown updater %q (want tree or noop)", s.Updater)
	}
	switch s.Reinvigorator {
	case "", "none", "static":
	default:
		return fmt.Errorf("unknown reinvigorator %q (want none or static)", s.Reinvigorator)
	}
	return nil
}

// Options converts the document into planner options. The representative
// states seed the static reinvigorator when one is selected; they come
// from the caller because the document is domain-agnostic.
func (s Solver) Options(representatives ...pomdp.State) ([]searcher.Option, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Reinvigorator == "static" && len(representatives) == 0 {
		return nil, fmt.Errorf("static reinvigorator requires representative states")
	}

	options := []searcher.Option{
		searcher.WithQueries(s.Queries),
		searcher.WithExploration(s.Exploration),
		searcher.WithEpsilon(s.Epsilon),
		searcher.WithMaxDepth(s.MaxDepth),
		searcher.WithSeed(s.Seed),
	}
	if s.MaxActions > 0 {
		options = append(options, searcher.WithMaxActions(s.MaxActions))
	}
	if s.Updater == "noop" {
		options = append(options, searcher.WithUpdater(searcher.NoopUpdater{}))
	}
	if s.Reinvigorator == "static" {
		options = append(options, searcher.WithReinvigorator(
			&searcher.StaticReinvigorator{States: representatives}))
	}
	return options, nil
}
