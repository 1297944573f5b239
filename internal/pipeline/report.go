package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FormatReport renders a human-readable run report.
func FormatReport(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Distribution Report: %s\n", r.RunID)
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format(time.RFC3339))
	if r.EstablishmentType != "" {
		fmt.Fprintf(&b, "Establishment type: %s\n", r.EstablishmentType)
	}
	b.WriteString("\n")

	// Waste supply.
	ws := r.WasteStatus
	fmt.Fprintf(&b, "## Waste Supply (%s)\n", ws.Period)
	fmt.Fprintf(&b, "- Received: %.1f kg\n", ws.TotalWasteReceivedKg)
	fmt.Fprintf(&b, "- Expected (%s): %.1f kg\n", ws.Projection, ws.TotalWasteExpectedKg)
	fmt.Fprintf(&b, "- Quality score: %d/100\n", ws.OverallQualityScore)
	fmt.Fprintf(&b, "- Processing capacity: %.0f kg\n\n", ws.MonthlyProcessingCapacity)

	// Allocation.
	if a := r.Allocation; a != nil {
		b.WriteString("## Allocation\n")
		fmt.Fprintf(&b, "Pool: %.1f kg, allocated %.1f kg, unallocated %.1f kg\n\n",
			a.PoolKg, a.AllocatedKg, a.UnallocatedKg)
		b.WriteString("| Rank | Company | Allocated (kg) | Share | Revenue (EUR) | Match |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, c := range a.Allocations {
			fmt.Fprintf(&b, "| %d | %s | %.1f | %d%% | %.2f | %.2f |\n",
				c.Rank, c.CompanyName, c.AllocatedKg, c.Percentage, c.RevenueEUR, c.MatchScore)
		}
		b.WriteString("\n")
	}

	// Fertilizer demand.
	b.WriteString("## Fertilizer Requirements\n")
	if len(r.Summaries) == 0 {
		b.WriteString("No recommendations.\n")
	}
	for _, s := range r.Summaries {
		fmt.Fprintf(&b, "### %s (%.0f kg)\n", s.CompanyName, s.TotalAmount)
		names := make([]string, 0, len(s.FertilizerTotals))
		for name := range s.FertilizerTotals {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "- %s: %.0f kg\n", name, s.FertilizerTotals[name])
		}
	}

	return b.String()
}
