package network

import (
	"errors"
	"testing"

	"github.com/dd0wney/stockflow/pkg/validation"
)

// buildChain creates supplier -> dc -> retailer with the given lead times.
func buildChain(t *testing.T, leadTimes ...float64) *Network {
	t.Helper()
	net := New()
	ids := []string{"supplier", "dc", "retailer"}
	for _, id := range ids {
		if err := net.AddNode(NewNode(id, "node")); err != nil {
			t.Fatalf("AddNode(%s) failed: %v", id, err)
		}
	}
	for i, lt := range leadTimes {
		if err := net.AddEdge(ids[i], ids[i+1], lt); err != nil {
			t.Fatalf("AddEdge failed: %v", err)
		}
	}
	return net
}

func TestAddNode_Duplicate(t *testing.T) {
	net := New()
	if err := net.AddNode(NewNode("supplier", "supplier")); err != nil {
		t.Fatalf("AddNode failed: %v", err)
	}

	err := net.AddNode(NewNode("supplier", "different_type"))
	if !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("Expected ErrDuplicateNode, got %v", err)
	}
	if net.NodeCount() != 1 {
		t.Errorf("NodeCount = %d after failed add, want 1", net.NodeCount())
	}
}

func TestAddEdge_Validation(t *testing.T) {
	net := New()
	net.AddNode(NewNode("a", "node"))
	net.AddNode(NewNode("b", "node"))

	tests := []struct {
		name     string
		from, to string
		leadTime float64
	}{
		{"missing_source", "ghost", "b", 1},
		{"missing_target", "a", "ghost", 1},
		{"zero_lead_time", "a", "b", 0},
		{"negative_lead_time", "a", "b", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := net.AddEdge(tt.from, tt.to, tt.leadTime)
			if !errors.Is(err, validation.ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
			// A rejected edge never alters the graph
			if net.EdgeCount() != 0 {
				t.Errorf("EdgeCount = %d after rejected edge, want 0", net.EdgeCount())
			}
		})
	}
}

func TestAddEdge_OverwritesOrderedPair(t *testing.T) {
	net := buildChain(t, 2.0, 1.0)

	if err := net.AddEdge("supplier", "dc", 4.0); err != nil {
		t.Fatalf("AddEdge overwrite failed: %v", err)
	}
	if net.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2 (no parallel edges)", net.EdgeCount())
	}

	e, ok := net.Edge("supplier", "dc")
	if !ok || e.LeadTime != 4.0 {
		t.Errorf("Edge lead time = %g, want 4.0", e.LeadTime)
	}
}

func TestPathLeadTime_TwoHopChain(t *testing.T) {
	net := buildChain(t, 2.0, 1.0)

	total, err := net.PathLeadTime("supplier", "retailer")
	if err != nil {
		t.Fatalf("PathLeadTime failed: %v", err)
	}
	if total != 3.0 {
		t.Errorf("PathLeadTime = %g, want 3.0", total)
	}
}

func TestPathLeadTime_ReverseDirectionFails(t *testing.T) {
	net := buildChain(t, 2.0, 1.0)

	_, err := net.PathLeadTime("retailer", "supplier")
	if !errors.Is(err, ErrNoPath) {
		t.Errorf("Expected ErrNoPath, got %v", err)
	}
}

func TestPathLeadTime_SameNode(t *testing.T) {
	net := buildChain(t, 2.0, 1.0)

	total, err := net.PathLeadTime("dc", "dc")
	if err != nil {
		t.Fatalf("PathLeadTime failed: %v", err)
	}
	if total != 0 {
		t.Errorf("PathLeadTime(dc, dc) = %g, want 0", total)
	}
}

func TestPathLeadTime_UnknownNode(t *testing.T) {
	net := buildChain(t, 2.0, 1.0)

	_, err := net.PathLeadTime("ghost", "retailer")
	if !errors.Is(err, validation.ErrValidation) {
		t.Errorf("Expected ErrValidation for unknown source, got %v", err)
	}
}

// TestPathLeadTime_HopCountSemantics pins the hop-minimal (not lead-time
// minimal) path choice: a direct slow edge beats a two-hop fast route.
func TestPathLeadTime_HopCountSemantics(t *testing.T) {
	net := New()
	for _, id := range []string{"a", "b", "c"} {
		net.AddNode(NewNode(id, "node"))
	}
	// Direct a->c is one hop with lead time 10; a->b->c is two hops
	// totaling 2. Hop-count semantics must pick the direct edge.
	net.AddEdge("a", "c", 10)
	net.AddEdge("a", "b", 1)
	net.AddEdge("b", "c", 1)

	total, err := net.PathLeadTime("a", "c")
	if err != nil {
		t.Fatalf("PathLeadTime failed: %v", err)
	}
	if total != 10 {
		t.Errorf("PathLeadTime = %g, want 10 (hop-minimal path)", total)
	}
}

func TestSimulateDisruption_DeratesCapacity(t *testing.T) {
	net := New()
	net.AddNode(NewNode("supplier", "supplier"))
	net.AddNode(NewNode("dc", "distribution_center"))
	net.AddNode(NewNode("retailer", "retailer"))
	net.AddEdgeWithCapacity("supplier", "dc", 2.0, 1000)
	net.AddEdge("dc", "retailer", 1.0) // no capacity label

	if err := net.SimulateDisruption("dc", 5, 0.5); err != nil {
		t.Fatalf("SimulateDisruption failed: %v", err)
	}

	e, _ := net.Edge("supplier", "dc")
	if e.Capacity != 500 {
		t.Errorf("Capacity = %g, want exactly 500", e.Capacity)
	}

	// Edge without a capacity label is untouched
	plain, _ := net.Edge("dc", "retailer")
	if plain.HasCapacity {
		t.Error("Uncapacitated edge gained a capacity label")
	}
}

func TestSimulateDisruption_Validation(t *testing.T) {
	net := New()
	net.AddNode(NewNode("dc", "distribution_center"))

	if err := net.SimulateDisruption("ghost", 5, 0.5); !errors.Is(err, validation.ErrValidation) {
		t.Errorf("Unknown node: expected ErrValidation, got %v", err)
	}
	for _, reduction := range []float64{-0.1, 1.1} {
		err := net.SimulateDisruption("dc", 5, reduction)
		if !errors.Is(err, validation.ErrValidation) {
			t.Errorf("Reduction %g: expected ErrValidation, got %v", reduction, err)
		}
	}
}

func TestSimulateDisruption_BoundaryReductions(t *testing.T) {
	net := New()
	net.AddNode(NewNode("supplier", "supplier"))
	net.AddNode(NewNode("dc", "distribution_center"))
	net.AddEdgeWithCapacity("supplier", "dc", 2.0, 1000)

	// Reduction 0 leaves capacity unchanged
	if err := net.SimulateDisruption("dc", 1, 0); err != nil {
		t.Fatalf("SimulateDisruption(0) failed: %v", err)
	}
	if e, _ := net.Edge("supplier", "dc"); e.Capacity != 1000 {
		t.Errorf("Capacity after zero reduction = %g, want 1000", e.Capacity)
	}

	// Reduction 1 zeroes it
	if err := net.SimulateDisruption("dc", 1, 1); err != nil {
		t.Fatalf("SimulateDisruption(1) failed: %v", err)
	}
	if e, _ := net.Edge("supplier", "dc"); e.Capacity != 0 {
		t.Errorf("Capacity after full reduction = %g, want 0", e.Capacity)
	}
}

func TestSimulateDisruption_PersistsUntilRestore(t *testing.T) {
	net := New()
	net.AddNode(NewNode("supplier", "supplier"))
	net.AddNode(NewNode("dc", "distribution_center"))
	net.AddEdgeWithCapacity("supplier", "dc", 2.0, 1000)

	net.SimulateDisruption("dc", 5, 0.5)
	net.SimulateDisruption("dc", 5, 0.5) // compounding derates

	e, _ := net.Edge("supplier", "dc")
	if e.Capacity != 250 {
		t.Errorf("Capacity after two disruptions = %g, want 250", e.Capacity)
	}

	// Restore rolls back to pre-disruption capacity, not the midpoint
	if err := net.RestoreCapacity("dc"); err != nil {
		t.Fatalf("RestoreCapacity failed: %v", err)
	}
	e, _ = net.Edge("supplier", "dc")
	if e.Capacity != 1000 {
		t.Errorf("Capacity after restore = %g, want 1000", e.Capacity)
	}
}

func TestRestoreCapacity_UnknownNode(t *testing.T) {
	net := New()
	if err := net.RestoreCapacity("ghost"); !errors.Is(err, validation.ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}
