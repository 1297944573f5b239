package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/circufert/circufert-cli/internal/pipeline"
)

var recommendFormat string

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Run recommendations, aggregation and allocation and print the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), cfg, "run")
		if err != nil {
			return err
		}

		report := pipeline.Run(env.Snapshot, env.Options)

		if recommendFormat == "text" {
			fmt.Fprint(cmd.OutOrStdout(), pipeline.FormatReport(report))
			return nil
		}
		return writeStructured(cmd.OutOrStdout(), report, recommendFormat)
	},
}

func init() {
	recommendCmd.Flags().StringVar(&recommendFormat, "format", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(recommendCmd)
}
