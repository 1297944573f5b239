package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/circufert/circufert-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "circufert",
	Short: "Food waste to fertilizer distribution engine",
	Long:  "Matches fertilizer blends to farm soil, aggregates company demand and allocates collected food waste across fertilizer producers.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
