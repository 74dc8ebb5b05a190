package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/stockflow/pkg/validation"
)

func TestSimulateSafetyStockParallel_RowShape(t *testing.T) {
	sim, err := New(newTestGenerator(t), 200)
	require.NoError(t, err)

	results, err := sim.SimulateSafetyStockParallel(7, 30, []int{1, 2, 3}, 4)
	require.NoError(t, err)
	require.Len(t, results, 600)

	// Every (iteration, lead time) slot is filled exactly once
	seen := make(map[[2]int]bool)
	for _, r := range results {
		key := [2]int{r.Iteration, r.LeadTime}
		assert.False(t, seen[key], "duplicate row for %v", key)
		seen[key] = true
		assert.Greater(t, r.SafetyStock, 0.0)
	}
	assert.Len(t, seen, 600)
}

func TestSimulateSafetyStockParallel_Validation(t *testing.T) {
	sim, err := New(newTestGenerator(t), 10)
	require.NoError(t, err)

	_, err = sim.SimulateSafetyStockParallel(7, 30, nil, 4)
	assert.ErrorIs(t, err, validation.ErrValidation)

	_, err = sim.SimulateSafetyStockParallel(7, 30, []int{-1}, 4)
	assert.ErrorIs(t, err, validation.ErrValidation)
}

func TestSimulateSafetyStockParallel_DistributionMatchesSequential(t *testing.T) {
	sim, err := New(newTestGenerator(t), 500)
	require.NoError(t, err)

	parallelResults, err := sim.SimulateSafetyStockParallel(7, 30, []int{2}, 4)
	require.NoError(t, err)

	seqSim, err := New(newTestGenerator(t), 500)
	require.NoError(t, err)
	seqResults, err := seqSim.SimulateSafetyStock(7, 30, []int{2})
	require.NoError(t, err)

	// Not bit-for-bit identical, but statistically indistinguishable: both
	// estimate the same (7+2)*100 expected safety stock.
	par := AnalyzeResults(parallelResults)[2]
	seq := AnalyzeResults(seqResults)[2]
	assert.InEpsilon(t, seq.Mean, par.Mean, 0.02)
}

func TestSimulateSafetyStockParallel_SingleWorker(t *testing.T) {
	sim, err := New(newTestGenerator(t), 50)
	require.NoError(t, err)

	results, err := sim.SimulateSafetyStockParallel(7, 30, []int{1, 2}, 1)
	require.NoError(t, err)
	assert.Len(t, results, 100)
}
