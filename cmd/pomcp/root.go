package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pomcp/config"
)

var (
	configPath string
	verbose    bool

	solver = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "pomcp",
	Short: "Online POMDP planning by Monte Carlo tree search over beliefs",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}

		if configPath != "" {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			solver = loaded
			log.Debug().Msgf("loaded solver config from %s", configPath)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a solver config YAML file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
