package scenario

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dd0wney/stockflow/pkg/visualization"
)

// FormatCurrency renders an amount with K/M suffixes, as shown in reports.
func FormatCurrency(amount float64) string {
	switch {
	case amount >= 1_000_000 || amount <= -1_000_000:
		return fmt.Sprintf("$%.1fM", amount/1_000_000)
	case amount >= 1_000 || amount <= -1_000:
		return fmt.Sprintf("$%.1fK", amount/1_000)
	default:
		return fmt.Sprintf("$%.0f", amount)
	}
}

// WriteReport renders a run report as text for terminals and logs.
func WriteReport(w io.Writer, report *Report) {
	fmt.Fprintf(w, "Scenario: %s (run %s)\n", report.Scenario, report.RunID)
	fmt.Fprintf(w, "Mode: %s, iterations: %d, result rows: %d, elapsed: %s\n",
		report.Mode, report.Iterations, report.Rows, report.Elapsed.Round(1e6))

	if report.Network != nil {
		fmt.Fprintf(w, "\nNetwork (%d nodes, %d edges):\n",
			report.Network.NodeCount(), report.Network.EdgeCount())
		positions := visualization.ForceDirectedLayout(report.Network, visualization.DefaultLayoutConfig())
		fmt.Fprintln(w, visualization.Sketch(positions, visualization.DefaultSketchConfig()))
	}

	if len(report.Paths) > 0 {
		fmt.Fprintln(w, "\nNetwork path lead times:")
		for _, p := range report.Paths {
			fmt.Fprintf(w, "  %s -> %s: %.1f days\n", p.From, p.To, p.LeadTime)
		}
	}

	fmt.Fprintln(w, "\nSafety stock by lead time:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEAD TIME\tMEAN\tSTD\tMIN\tMAX\tMEDIAN\tP95\t95% CI")
	for _, lt := range report.LeadTimes {
		s := report.Stats[lt]
		ci := report.Intervals[lt]
		fmt.Fprintf(tw, "%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t[%.1f, %.1f]\n",
			lt, s.Mean, s.Std, s.Min, s.Max, s.Median, s.P95, ci.Lower, ci.Upper)
	}
	tw.Flush()

	if report.Impact != nil {
		writeImpact(w, report.Impact)
	}
}

func writeImpact(w io.Writer, impact *ImpactReport) {
	fmt.Fprintf(w, "\nCost impact (baseline lead time %d, stock %.0f units, holding cost %s/yr):\n",
		impact.BaselineLeadTime, impact.BaselineStock, FormatCurrency(impact.BaselineHoldingCost))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEAD TIME\tMEAN STOCK\tCHANGE\tINVENTORY VALUE\tHOLDING COST\tADDITIONAL")
	for _, e := range impact.Entries {
		fmt.Fprintf(tw, "%d\t%.0f\t%+.1f%%\t%s\t%s\t%s\n",
			e.LeadTime, e.MeanSafetyStock, e.PctChange,
			FormatCurrency(e.InventoryValue), FormatCurrency(e.AnnualHoldingCost),
			FormatCurrency(e.AdditionalCost))
	}
	tw.Flush()

	if impact.Significant {
		fmt.Fprintf(w, "SIGNIFICANT IMPACT: holding costs rise up to %.1f%% above baseline; regular monitoring recommended\n",
			impact.MaxCostIncreasePct)
	} else {
		fmt.Fprintf(w, "Low impact (max +%.1f%%): quarterly review sufficient\n", impact.MaxCostIncreasePct)
	}
}
