package scenario

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/stockflow/pkg/demand"
	"github.com/dd0wney/stockflow/pkg/logging"
	"github.com/dd0wney/stockflow/pkg/metrics"
	"github.com/dd0wney/stockflow/pkg/network"
	"github.com/dd0wney/stockflow/pkg/simulation"
)

// PathResult is one resolved path lead-time query.
type PathResult struct {
	From     string
	To       string
	LeadTime float64
}

// Report is everything a scenario run produces, consumed by the CLI, the TUI
// and the example programs.
type Report struct {
	RunID      string
	Scenario   string
	Mode       string
	Iterations int
	LeadTimes  []int
	Rows       int
	Elapsed    time.Duration

	Stats     map[int]simulation.Summary
	Intervals map[int]simulation.Interval
	Paths     []PathResult
	Impact    *ImpactReport

	// Network as built (after disruptions), for layout and inspection
	Network *network.Network
}

// Runner executes scenarios.
type Runner struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

// RunnerOption customizes a runner.
type RunnerOption func(*Runner)

// WithLogger attaches a structured logger.
func WithLogger(logger logging.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// WithMetrics attaches a metrics registry.
func WithMetrics(reg *metrics.Registry) RunnerOption {
	return func(r *Runner) { r.metrics = reg }
}

// NewRunner creates a runner. By default logs are discarded and metrics go to
// the process-wide registry.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		logger:  logging.NewNopLogger(),
		metrics: metrics.DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates and executes a scenario end to end: build the network, apply
// disruptions, resolve path lead times into scenarios, run the Monte Carlo
// loop and analyze the results.
func (r *Runner) Run(sc *Scenario) (*Report, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:    uuid.NewString(),
		Scenario: sc.Name,
		Mode:     "sequential",
	}
	logger := r.logger.With(logging.RunID(report.RunID), logging.Scenario(sc.Name))
	start := time.Now()

	gen, err := buildGenerator(sc.Demand)
	if err != nil {
		return nil, err
	}

	leadTimes := append([]int(nil), sc.Simulation.LeadTimes...)

	if sc.Network != nil {
		net, err := buildNetwork(sc.Network)
		if err != nil {
			return nil, err
		}
		report.Network = net
		r.metrics.UpdateNetworkSize(net.NodeCount(), net.EdgeCount())

		for _, d := range sc.Disruptions {
			if err := net.SimulateDisruption(d.Node, d.Duration, d.CapacityReduction); err != nil {
				return nil, err
			}
			r.metrics.RecordDisruption()
			logger.Info("disruption applied",
				logging.NodeID(d.Node),
				logging.Float64("capacity_reduction", d.CapacityReduction),
				logging.Float64("duration", d.Duration))
		}

		for _, q := range sc.Network.PathLeadTimes {
			lt, err := net.PathLeadTime(q.From, q.To)
			if err != nil {
				r.metrics.RecordPathQuery("no_path")
				return nil, err
			}
			r.metrics.RecordPathQuery("ok")
			report.Paths = append(report.Paths, PathResult{From: q.From, To: q.To, LeadTime: lt})
			leadTimes = append(leadTimes, int(math.Round(lt)))
		}
	}

	leadTimes = dedupe(leadTimes)

	sim, err := simulation.New(gen, sc.Simulation.Iterations, simulation.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	var results []simulation.Result
	if sc.Simulation.Workers > 0 {
		report.Mode = "parallel"
		results, err = sim.SimulateSafetyStockParallel(
			sc.Simulation.CoverageDays, sc.Simulation.SimulationDays, leadTimes, sc.Simulation.Workers)
	} else {
		results, err = sim.SimulateSafetyStock(
			sc.Simulation.CoverageDays, sc.Simulation.SimulationDays, leadTimes)
	}

	elapsed := time.Since(start)
	if err != nil {
		r.metrics.RecordSimulation(report.Mode, "error", elapsed, 0, 0)
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}

	report.Iterations = sc.Simulation.Iterations
	report.LeadTimes = simulation.LeadTimes(results)
	report.Rows = len(results)
	report.Elapsed = elapsed
	report.Stats = simulation.AnalyzeResults(results)
	report.Intervals = simulation.ConfidenceIntervals(results, 0.95)
	if sc.Costs != nil {
		report.Impact = AnalyzeImpact(report.Stats, *sc.Costs)
	}

	r.metrics.RecordSimulation(report.Mode, "ok", elapsed, sc.Simulation.Iterations, len(results))
	logger.Info("scenario finished",
		logging.Int("result_rows", report.Rows),
		logging.Int("lead_time_scenarios", len(report.LeadTimes)),
		logging.Elapsed(elapsed))
	return report, nil
}

func buildGenerator(cfg DemandConfig) (*demand.Generator, error) {
	if cfg.Seed != nil {
		return demand.NewSeededGenerator(cfg.Mean, cfg.StdDev, *cfg.Seed)
	}
	return demand.NewGenerator(cfg.Mean, cfg.StdDev)
}

func buildNetwork(cfg *NetworkConfig) (*network.Network, error) {
	net := network.New()
	for _, n := range cfg.Nodes {
		if err := net.AddNode(network.NewNode(n.ID, n.Type)); err != nil {
			return nil, err
		}
	}
	for _, e := range cfg.Edges {
		var err error
		if e.Capacity != nil {
			err = net.AddEdgeWithCapacity(e.From, e.To, e.LeadTime, *e.Capacity)
		} else {
			err = net.AddEdge(e.From, e.To, e.LeadTime)
		}
		if err != nil {
			return nil, err
		}
	}
	return net, nil
}

// dedupe removes repeated lead times, keeping first occurrence order.
func dedupe(leadTimes []int) []int {
	seen := make(map[int]bool, len(leadTimes))
	out := leadTimes[:0]
	for _, lt := range leadTimes {
		if !seen[lt] {
			seen[lt] = true
			out = append(out, lt)
		}
	}
	return out
}
