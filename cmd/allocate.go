package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/circufert/circufert-cli/internal/allocation"
	"github.com/circufert/circufert-cli/internal/pipeline"
)

var (
	allocateType      string
	allocateForceFull bool
	allocatePoolKg    float64
	allocateFormat    string
)

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Allocate the collected food waste pool across fertilizer companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("type") {
			cfg.Allocation.EstablishmentType = allocateType
		}
		if flags.Changed("force-full") {
			cfg.Allocation.ForceFullAllocation = allocateForceFull
		}
		if flags.Changed("pool-kg") {
			cfg.Allocation.PoolKg = allocatePoolKg
		}

		env, err := initEnv(cmd.Context(), cfg, "run")
		if err != nil {
			return err
		}

		res := pipeline.Allocate(env.Snapshot, env.Options)

		if allocateFormat == "text" {
			return writeAllocation(cmd.OutOrStdout(), res)
		}
		return writeStructured(cmd.OutOrStdout(), res, allocateFormat)
	},
}

// writeAllocation prints the ranked allocation as an aligned table.
func writeAllocation(w io.Writer, res *allocation.Result) error {
	fmt.Fprintf(w, "Pool %s, allocated %s, unallocated %s\n\n",
		formatKg(res.PoolKg), formatKg(res.AllocatedKg), formatKg(res.UnallocatedKg))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCOMPANY\tALLOCATED\tSHARE\tREVENUE\tMATCH\tCEILING")
	for _, a := range res.Allocations {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d%%\t%s\t%.2f\t%s\n",
			a.Rank, a.CompanyName, formatKg(a.AllocatedKg), a.Percentage,
			formatEUR(a.RevenueEUR), a.MatchScore, formatKg(a.CapacityKg))
	}
	return tw.Flush()
}

func init() {
	f := allocateCmd.Flags()
	f.StringVar(&allocateType, "type", "", "establishment type feeding the pool (default from config)")
	f.BoolVar(&allocateForceFull, "force-full", false, "push leftover waste into remaining processing headroom")
	f.Float64Var(&allocatePoolKg, "pool-kg", 0, "pool size in kg, 0 derives it from food-service data")
	f.StringVar(&allocateFormat, "format", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(allocateCmd)
}
