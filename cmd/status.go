package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/circufert/circufert-cli/internal/wastestats"
)

var statusFormat string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show food waste supply status for the configured period",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), cfg, "run")
		if err != nil {
			return err
		}

		st := wastestats.ComputeStatus(&env.Snapshot.FoodService, env.Options.Period, env.Options.Projection)

		if statusFormat == "text" {
			return writeStatus(cmd.OutOrStdout(), st)
		}
		return writeStructured(cmd.OutOrStdout(), st, statusFormat)
	},
}

func writeStatus(w io.Writer, st wastestats.Status) error {
	fmt.Fprintf(w, "Waste supply %s\n", st.Period)
	fmt.Fprintf(w, "  received:  %s\n", formatKg(st.TotalWasteReceivedKg))
	fmt.Fprintf(w, "  expected:  %s (%s)\n", formatKg(st.TotalWasteExpectedKg), st.Projection)
	fmt.Fprintf(w, "  capacity:  %s at %d%% yield\n", formatKg(st.MonthlyProcessingCapacity), st.ProductionYieldPercentage)
	fmt.Fprintf(w, "  quality:   %d/100\n", st.OverallQualityScore)
	fmt.Fprintf(w, "  sources:   %d (%s meals/day)\n\n", st.SourceCount, printer.Sprintf("%d", st.TotalMealsPerDay))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tVALUE\tSTATUS")
	for _, m := range st.QualityMetrics {
		fmt.Fprintf(tw, "%s\t%.2f%s\t%s\n", m.Name, m.Value, m.Unit, m.Status)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "SOURCE\tTYPE\tAMOUNT\tDELIVERY\tQUALITY")
	for _, s := range st.WasteSources {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			s.Name, s.EstablishmentType, formatKg(s.AmountKg), s.ScheduledDelivery, s.QualityScore)
	}
	return tw.Flush()
}

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(statusCmd)
}
