// Package simulation runs Monte Carlo safety-stock estimation across a set of
// lead-time scenarios and derives summary statistics from the results.
package simulation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dd0wney/stockflow/pkg/demand"
	"github.com/dd0wney/stockflow/pkg/logging"
	"github.com/dd0wney/stockflow/pkg/validation"
)

// Result is one simulated observation: the safety stock computed for a given
// lead time in a given iteration. The full result set is a flat table.
type Result struct {
	LeadTime    int
	SafetyStock float64
	Iteration   int
}

// Simulation repeatedly samples demand and derives safety-stock figures for
// each lead-time scenario.
type Simulation struct {
	gen        *demand.Generator
	iterations int
	logger     logging.Logger
}

// Option customizes a simulation.
type Option func(*Simulation)

// WithLogger attaches a structured logger; the default discards output.
func WithLogger(logger logging.Logger) Option {
	return func(s *Simulation) { s.logger = logger }
}

// New creates a simulation running the given number of iterations.
func New(gen *demand.Generator, iterations int, opts ...Option) (*Simulation, error) {
	if gen == nil {
		return nil, fmt.Errorf("%w: demand generator is required", validation.ErrValidation)
	}
	if iterations <= 0 {
		return nil, fmt.Errorf("%w: iterations must be positive, got %d", validation.ErrValidation, iterations)
	}

	s := &Simulation{
		gen:        gen,
		iterations: iterations,
		logger:     logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Iterations returns the configured iteration count.
func (s *Simulation) Iterations() int { return s.iterations }

func (s *Simulation) validateRun(coverageDays float64, simulationDays int, leadTimes []int) error {
	cv := validation.NewConfigValidator("SimulateSafetyStock").
		PositiveFloat("coverage_days", coverageDays).
		PositiveInt("simulation_days", simulationDays).
		NonEmpty("lead_times", len(leadTimes))
	for i, lt := range leadTimes {
		cv.Check(lt >= 0, "lead_times", fmt.Sprintf("entry %d is negative (%d)", i, lt))
	}
	return cv.Err()
}

// SimulateSafetyStock runs the Monte Carlo loop. Each iteration draws one
// shared demand history of simulationDays and reuses it across every lead
// time, coupling the scenarios' noise so cross-scenario comparisons see the
// same demand realization. Emits one row per (iteration, lead time) pair.
func (s *Simulation) SimulateSafetyStock(coverageDays float64, simulationDays int, leadTimes []int) ([]Result, error) {
	if err := s.validateRun(coverageDays, simulationDays, leadTimes); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	timer := logging.StartTimer(s.logger, "simulation finished", logging.RunID(runID))
	s.logger.Info("simulation started",
		logging.RunID(runID),
		logging.Iterations(s.iterations),
		logging.Int("simulation_days", simulationDays),
		logging.Int("lead_time_scenarios", len(leadTimes)))

	results := make([]Result, 0, s.iterations*len(leadTimes))
	for iter := 0; iter < s.iterations; iter++ {
		rows, err := runIteration(s.gen, iter, coverageDays, simulationDays, leadTimes)
		if err != nil {
			timer.EndError(err)
			return nil, err
		}
		results = append(results, rows...)
	}

	timer.End(logging.Int("result_rows", len(results)))
	return results, nil
}

// runIteration draws the iteration's shared demand history once and computes
// a safety stock per lead time from it.
func runIteration(gen *demand.Generator, iter int, coverageDays float64, simulationDays int, leadTimes []int) ([]Result, error) {
	history, err := gen.DailyDemand(simulationDays)
	if err != nil {
		return nil, err
	}

	rows := make([]Result, 0, len(leadTimes))
	for _, lt := range leadTimes {
		effectiveCoverage := coverageDays + float64(lt)
		safetyStock, err := gen.SafetyStock(effectiveCoverage, history, 0)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Result{LeadTime: lt, SafetyStock: safetyStock, Iteration: iter})
	}
	return rows, nil
}
