package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("overrides defaults with file values", func(t *testing.T) {
		path := writeConfig(t, `
queries: 250
exploration: 2.5
maxDepth: 10
seed: 99
updater: noop
reinvigorator: static
`)

		solver, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 250, solver.Queries)
		require.Equal(t, 2.5, solver.Exploration)
		require.Equal(t, 10, solver.MaxDepth)
		require.Equal(t, uint64(99), solver.Seed)
		require.Equal(t, "noop", solver.Updater)
		require.Equal(t, "static", solver.Reinvigorator)
		require.Equal(t, 1e-7, solver.Epsilon, "Untouched keys keep their defaults")
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

		require.Error(t, err)
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		path := writeConfig(t, "queries: -5\n")

		_, err := Load(path)

		require.ErrorContains(t, err, "queries must be positive")
	})

	t.Run("unknown updater fails validation", func(t *testing.T) {
		path := writeConfig(t, "updater: kalman\n")

		_, err := Load(path)

		require.ErrorContains(t, err, "unknown updater")
	})

	t.Run("unknown reinvigorator fails validation", func(t *testing.T) {
		path := writeConfig(t, "reinvigorator: oracle\n")

		_, err := Load(path)

		require.ErrorContains(t, err, "unknown reinvigorator")
	})
}

func TestOptions(t *testing.T) {
	t.Run("default document produces the base option set", func(t *testing.T) {
		options, err := Default().Options()

		require.NoError(t, err)
		require.Len(t, options, 5)
	})

	t.Run("maxActions and noop updater add options", func(t *testing.T) {
		solver := Default()
		solver.MaxActions = 4
		solver.Updater = "noop"

		options, err := solver.Options()

		require.NoError(t, err)
		require.Len(t, options, 7)
	})

	t.Run("static reinvigorator wires the representative states", func(t *testing.T) {
		solver := Default()
		solver.Reinvigorator = "static"

		options, err := solver.Options("left", "right")

		require.NoError(t, err)
		require.Len(t, options, 6)
	})

	t.Run("static reinvigorator without states fails", func(t *testing.T) {
		solver := Default()
		solver.Reinvigorator = "static"

		_, err := solver.Options()

		require.ErrorContains(t, err, "representative states")
	})

	t.Run("invalid document fails", func(t *testing.T) {
		solver := Default()
		solver.Epsilon = 0

		_, err := solver.Options()

		require.Error(t, err)
	})
}
