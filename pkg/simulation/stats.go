package simulation

import (
	"math"
	"sort"
)

// Summary holds the six descriptive statistics computed per lead-time group.
type Summary struct {
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
	Median float64
	P95    float64
}

// Interval is a symmetric confidence interval around a group's sample mean.
type Interval struct {
	Lower float64
	Upper float64
}

// AnalyzeResults groups rows by lead time and computes descriptive statistics
// over each group's safety-stock values.
func AnalyzeResults(results []Result) map[int]Summary {
	stats := make(map[int]Summary)
	for leadTime, values := range SamplesByLeadTime(results) {
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)

		stats[leadTime] = Summary{
			Mean:   mean(values),
			Std:    sampleStd(values),
			Min:    sorted[0],
			Max:    sorted[len(sorted)-1],
			Median: quantileSorted(sorted, 0.5),
			P95:    quantileSorted(sorted, 0.95),
		}
	}
	return stats
}

// ConfidenceIntervals computes mean +/- 1.96 * standard error per lead-time
// group. The 1.96 multiplier is fixed for the 95% default; confidenceLevel is
// accepted for interface compatibility but no other critical value is derived
// from it.
func ConfidenceIntervals(results []Result, confidenceLevel float64) map[int]Interval {
	_ = confidenceLevel

	intervals := make(map[int]Interval)
	for leadTime, values := range SamplesByLeadTime(results) {
		m := mean(values)
		stdErr := sampleStd(values) / math.Sqrt(float64(len(values)))
		margin := 1.96 * stdErr

		intervals[leadTime] = Interval{Lower: m - margin, Upper: m + margin}
	}
	return intervals
}

// SamplesByLeadTime collects each lead time's safety-stock values, preserving
// row order within a group. The series feed box plots and external charting.
func SamplesByLeadTime(results []Result) map[int][]float64 {
	groups := make(map[int][]float64)
	for _, r := range results {
		groups[r.LeadTime] = append(groups[r.LeadTime], r.SafetyStock)
	}
	return groups
}

// LeadTimes returns the sorted distinct lead times present in the results.
func LeadTimes(results []Result) []int {
	seen := make(map[int]bool)
	for _, r := range results {
		seen[r.LeadTime] = true
	}
	out := make([]int, 0, len(seen))
	for lt := range seen {
		out = append(out, lt)
	}
	sort.Ints(out)
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStd is the Bessel-corrected standard deviation; 0 for fewer than two
// samples.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

// quantileSorted linearly interpolates the q-quantile of an ascending slice.
func quantileSorted(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	pos := q * float64(n-1)
	lower := int(math.Floor(pos))
	if lower >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[lower+1]*frac
}
