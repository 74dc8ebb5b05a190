package simulation

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/stockflow/pkg/logging"
	"github.com/dd0wney/stockflow/pkg/parallel"
)

// SimulateSafetyStockParallel runs the same Monte Carlo loop as
// SimulateSafetyStock with iterations spread across a worker pool. Each
// partition draws from an independently seeded fork of the demand generator
// and writes into its own slice region, so no locking is needed on the result
// table. The aggregate distribution matches the sequential run statistically,
// but rows are not bit-for-bit identical to it.
func (s *Simulation) SimulateSafetyStockParallel(coverageDays float64, simulationDays int, leadTimes []int, workers int) ([]Result, error) {
	if err := s.validateRun(coverageDays, simulationDays, leadTimes); err != nil {
		return nil, err
	}

	pool := parallel.NewWorkerPool(workers)
	ranges := parallel.Partition(s.iterations, pool.Workers())

	runID := uuid.NewString()
	start := time.Now()
	s.logger.Info("parallel simulation started",
		logging.RunID(runID),
		logging.Iterations(s.iterations),
		logging.Int("workers", pool.Workers()),
		logging.Int("partitions", len(ranges)))

	perLead := len(leadTimes)
	results := make([]Result, s.iterations*perLead)

	var mu sync.Mutex
	var firstErr error

	for p, r := range ranges {
		gen := s.gen.Fork(int64(p) + 1)
		lo, hi := r[0], r[1]

		pool.Submit(func() {
			for iter := lo; iter < hi; iter++ {
				rows, err := runIteration(gen, iter, coverageDays, simulationDays, leadTimes)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
				copy(results[iter*perLead:], rows)
			}
		})
	}
	pool.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	s.logger.Info("parallel simulation finished",
		logging.RunID(runID),
		logging.Int("result_rows", len(results)),
		logging.Elapsed(time.Since(start)))
	return results, nil
}
