// Package scenario loads YAML scenario files and runs them end to end:
// demand configuration, Monte Carlo parameters, optional network topology,
// disruptions and holding-cost analysis.
package scenario

import (
	"fmt"

	"github.com/dd0wney/stockflow/pkg/validation"
)

// Scenario is the root of a scenario file.
type Scenario struct {
	Name        string             `yaml:"name" validate:"required"`
	Demand      DemandConfig       `yaml:"demand"`
	Simulation  SimulationConfig   `yaml:"simulation"`
	Network     *NetworkConfig     `yaml:"network,omitempty"`
	Disruptions []DisruptionConfig `yaml:"disruptions,omitempty" validate:"omitempty,dive"`
	Costs       *CostConfig        `yaml:"costs,omitempty"`
}

// DemandConfig configures the daily-demand distribution.
type DemandConfig struct {
	Mean   float64 `yaml:"mean" validate:"gt=0"`
	StdDev float64 `yaml:"std_dev" validate:"gte=0"`
	Seed   *int64  `yaml:"seed,omitempty"`
}

// SimulationConfig configures the Monte Carlo run. Workers 0 runs
// sequentially; any positive count runs the partitioned parallel loop.
type SimulationConfig struct {
	Iterations     int     `yaml:"iterations" validate:"gt=0"`
	CoverageDays   float64 `yaml:"coverage_days" validate:"gt=0"`
	SimulationDays int     `yaml:"simulation_days" validate:"gt=0"`
	LeadTimes      []int   `yaml:"lead_times" validate:"omitempty,dive,gte=0"`
	Workers        int     `yaml:"workers" validate:"gte=0"`
}

// NetworkConfig declares the supply chain topology. PathLeadTimes entries are
// resolved against the built network and appended to the simulation's
// lead-time scenarios.
type NetworkConfig struct {
	Nodes         []NodeConfig `yaml:"nodes" validate:"min=1,dive"`
	Edges         []EdgeConfig `yaml:"edges" validate:"omitempty,dive"`
	PathLeadTimes []PathQuery  `yaml:"path_lead_times,omitempty" validate:"omitempty,dive"`
}

// NodeConfig declares one supply chain node.
type NodeConfig struct {
	ID   string `yaml:"id" validate:"required"`
	Type string `yaml:"type"`
}

// EdgeConfig declares one directed transport link.
type EdgeConfig struct {
	From     string   `yaml:"from" validate:"required"`
	To       string   `yaml:"to" validate:"required"`
	LeadTime float64  `yaml:"lead_time" validate:"gt=0"`
	Capacity *float64 `yaml:"capacity,omitempty"`
}

// PathQuery asks for the cumulative lead time along the hop-minimal path.
type PathQuery struct {
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to" validate:"required"`
}

// DisruptionConfig derates capacity around a node before the simulation runs.
type DisruptionConfig struct {
	Node              string  `yaml:"node" validate:"required"`
	Duration          float64 `yaml:"duration" validate:"gte=0"`
	CapacityReduction float64 `yaml:"capacity_reduction" validate:"gte=0,lte=1"`
}

// CostConfig enables holding-cost impact analysis of the results.
type CostConfig struct {
	UnitCost    float64 `yaml:"unit_cost" validate:"gt=0"`
	HoldingRate float64 `yaml:"holding_rate" validate:"gt=0,lte=1"`
}

// Validate checks struct tags and cross-field consistency that tags cannot
// express: declared edge endpoints, disruption targets, and that at least one
// lead-time scenario exists somewhere.
func (s *Scenario) Validate() error {
	if err := validation.Struct(s); err != nil {
		return err
	}

	cv := validation.NewConfigValidator("Scenario")

	hasPathScenarios := s.Network != nil && len(s.Network.PathLeadTimes) > 0
	cv.Check(len(s.Simulation.LeadTimes) > 0 || hasPathScenarios,
		"simulation.lead_times", "no lead-time scenarios: list lead_times or network path_lead_times")

	if s.Network != nil {
		declared := make(map[string]bool, len(s.Network.Nodes))
		for i, n := range s.Network.Nodes {
			cv.Check(!declared[n.ID], "network.nodes", fmt.Sprintf("duplicate node id %q (entry %d)", n.ID, i))
			declared[n.ID] = true
		}
		for i, e := range s.Network.Edges {
			cv.Check(declared[e.From], "network.edges", fmt.Sprintf("entry %d references undeclared node %q", i, e.From))
			cv.Check(declared[e.To], "network.edges", fmt.Sprintf("entry %d references undeclared node %q", i, e.To))
		}
		for i, q := range s.Network.PathLeadTimes {
			cv.Check(declared[q.From], "network.path_lead_times", fmt.Sprintf("entry %d references undeclared node %q", i, q.From))
			cv.Check(declared[q.To], "network.path_lead_times", fmt.Sprintf("entry %d references undeclared node %q", i, q.To))
		}
		for i, d := range s.Disruptions {
			cv.Check(declared[d.Node], "disruptions", fmt.Sprintf("entry %d references undeclared node %q", i, d.Node))
		}
	} else {
		cv.Check(len(s.Disruptions) == 0, "disruptions", "disruptions require a network section")
	}

	return cv.Err()
}
