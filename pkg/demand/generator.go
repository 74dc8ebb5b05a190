// Package demand produces stochastic daily-demand sequences and converts a
// demand history into a safety-stock figure.
package demand

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/dd0wney/stockflow/pkg/validation"
)

// DefaultHistoryDays is the demand history length used when SafetyStock is
// asked to generate its own history and no day count is given.
const DefaultHistoryDays = 30

// Generator draws normally distributed daily demand, floored at zero. Each
// generator owns its random stream, so seeding one simulation never perturbs
// another running in the same process.
type Generator struct {
	mean   float64
	stdDev float64
	seed   int64
	rng    *rand.Rand
}

// NewGenerator creates a generator seeded from the wall clock.
func NewGenerator(mean, stdDev float64) (*Generator, error) {
	return NewSeededGenerator(mean, stdDev, time.Now().UnixNano())
}

// NewSeededGenerator creates a generator with a fixed seed. Two generators
// constructed with identical arguments produce identical demand sequences.
func NewSeededGenerator(mean, stdDev float64, seed int64) (*Generator, error) {
	if mean <= 0 {
		return nil, fmt.Errorf("%w: mean demand must be positive, got %g", validation.ErrValidation, mean)
	}
	if stdDev < 0 {
		return nil, fmt.Errorf("%w: demand std dev must not be negative, got %g", validation.ErrValidation, stdDev)
	}

	return &Generator{
		mean:   mean,
		stdDev: stdDev,
		seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// Mean returns the configured mean daily demand.
func (g *Generator) Mean() float64 { return g.mean }

// StdDev returns the configured demand standard deviation.
func (g *Generator) StdDev() float64 { return g.stdDev }

// Fork derives an independently seeded generator with the same demand
// parameters. Used to give each simulation worker its own random stream.
func (g *Generator) Fork(offset int64) *Generator {
	forked, _ := NewSeededGenerator(g.mean, g.stdDev, g.seed+offset)
	return forked
}

// DailyDemand returns days independent samples from Normal(mean, stdDev).
// Negative draws are clamped to zero, not redrawn. The clamp biases the
// realized mean upward when stdDev is large relative to mean; that behavior
// is intentional and downstream figures depend on it.
func (g *Generator) DailyDemand(days int) ([]float64, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", validation.ErrValidation, days)
	}

	samples := make([]float64, days)
	for i := range samples {
		d := g.rng.NormFloat64()*g.stdDev + g.mean
		if d < 0 {
			d = 0
		}
		samples[i] = d
	}
	return samples, nil
}

// SafetyStock computes coverageDays times the mean of the demand history.
// A non-nil history takes precedence; otherwise the generator draws days of
// demand itself (DefaultHistoryDays when days <= 0).
func (g *Generator) SafetyStock(coverageDays float64, history []float64, days int) (float64, error) {
	if coverageDays <= 0 {
		return 0, fmt.Errorf("%w: coverage days must be positive, got %g", validation.ErrValidation, coverageDays)
	}

	if history == nil {
		if days <= 0 {
			days = DefaultHistoryDays
		}
		var err error
		history, err = g.DailyDemand(days)
		if err != nil {
			return 0, err
		}
	}

	return coverageDays * MeanOf(history), nil
}

// MeanOf returns the arithmetic mean of values, or 0 for an empty slice.
func MeanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
