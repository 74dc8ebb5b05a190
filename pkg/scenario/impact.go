package scenario

import (
	"sort"

	"github.com/dd0wney/stockflow/pkg/simulation"
)

// significanceFraction marks a holding-cost increase worth escalating: 25%
// above the baseline annual holding cost.
const significanceFraction = 0.25

// ImpactEntry quantifies one lead-time scenario against the baseline.
type ImpactEntry struct {
	LeadTime          int
	MeanSafetyStock   float64
	PctChange         float64 // percent change in mean safety stock vs baseline
	InventoryValue    float64 // mean stock times unit cost
	AnnualHoldingCost float64 // inventory value times holding rate
	AdditionalCost    float64 // annual holding cost above baseline
}

// ImpactReport translates safety-stock statistics into inventory cost terms.
// The baseline is the smallest simulated lead time.
type ImpactReport struct {
	BaselineLeadTime      int
	BaselineStock         float64
	BaselineHoldingCost   float64
	SignificanceThreshold float64
	MaxCostIncreasePct    float64
	Significant           bool
	Entries               []ImpactEntry
}

// AnalyzeImpact computes per-lead-time cost impact from summary statistics.
// Returns nil when stats holds fewer than two scenarios to compare.
func AnalyzeImpact(stats map[int]simulation.Summary, costs CostConfig) *ImpactReport {
	if len(stats) < 2 {
		return nil
	}

	leadTimes := make([]int, 0, len(stats))
	for lt := range stats {
		leadTimes = append(leadTimes, lt)
	}
	sort.Ints(leadTimes)

	baseline := leadTimes[0]
	baselineStock := stats[baseline].Mean
	baselineCost := baselineStock * costs.UnitCost * costs.HoldingRate

	report := &ImpactReport{
		BaselineLeadTime:      baseline,
		BaselineStock:         baselineStock,
		BaselineHoldingCost:   baselineCost,
		SignificanceThreshold: baselineCost * significanceFraction,
	}

	for _, lt := range leadTimes[1:] {
		mean := stats[lt].Mean
		value := mean * costs.UnitCost
		holding := value * costs.HoldingRate

		entry := ImpactEntry{
			LeadTime:          lt,
			MeanSafetyStock:   mean,
			PctChange:         (mean - baselineStock) / baselineStock * 100,
			InventoryValue:    value,
			AnnualHoldingCost: holding,
			AdditionalCost:    holding - baselineCost,
		}
		report.Entries = append(report.Entries, entry)

		increasePct := entry.AdditionalCost / baselineCost * 100
		if increasePct > report.MaxCostIncreasePct {
			report.MaxCostIncreasePct = increasePct
		}
	}

	report.Significant = report.MaxCostIncreasePct >= significanceFraction*100
	return report
}
