package visualization

import (
	"math"
	"testing"

	"github.com/dd0wney/stockflow/pkg/network"
)

func buildTestNetwork(t *testing.T) *network.Network {
	t.Helper()
	net := network.New()
	for _, id := range []string{"supplier", "port", "dc", "retailer"} {
		if err := net.AddNode(network.NewNode(id, "node")); err != nil {
			t.Fatalf("AddNode failed: %v", err)
		}
	}
	net.AddEdge("supplier", "port", 3)
	net.AddEdge("port", "dc", 2)
	net.AddEdge("dc", "retailer", 1)
	return net
}

func TestCircularLayout(t *testing.T) {
	net := buildTestNetwork(t)
	config := DefaultLayoutConfig()

	positions := CircularLayout(net, config)
	if len(positions) != 4 {
		t.Fatalf("Positions = %d, want 4", len(positions))
	}

	// All nodes sit on the same circle around the canvas center
	centerX, centerY := config.Width/2, config.Height/2
	wantRadius := math.Min(centerX, centerY) - config.Padding
	for id, p := range positions {
		r := math.Hypot(p.X-centerX, p.Y-centerY)
		if math.Abs(r-wantRadius) > 1e-9 {
			t.Errorf("Node %s radius = %g, want %g", id, r, wantRadius)
		}
	}
}

func TestCircularLayout_Empty(t *testing.T) {
	if got := CircularLayout(network.New(), DefaultLayoutConfig()); len(got) != 0 {
		t.Errorf("Empty network produced %d positions", len(got))
	}
}

func TestForceDirectedLayout_WithinCanvas(t *testing.T) {
	net := buildTestNetwork(t)
	config := DefaultLayoutConfig()

	positions := ForceDirectedLayout(net, config)
	if len(positions) != 4 {
		t.Fatalf("Positions = %d, want 4", len(positions))
	}

	for id, p := range positions {
		if p.X < config.Padding || p.X > config.Width-config.Padding ||
			p.Y < config.Padding || p.Y > config.Height-config.Padding {
			t.Errorf("Node %s at (%g, %g) is outside the padded canvas", id, p.X, p.Y)
		}
	}
}

func TestForceDirectedLayout_Deterministic(t *testing.T) {
	net := buildTestNetwork(t)
	config := DefaultLayoutConfig()

	a := ForceDirectedLayout(net, config)
	b := ForceDirectedLayout(net, config)

	for id := range a {
		if a[id] != b[id] {
			t.Errorf("Node %s moved between identical runs: %v vs %v", id, a[id], b[id])
		}
	}
}

func TestForceDirectedLayout_SingleNodeCentered(t *testing.T) {
	net := network.New()
	net.AddNode(network.NewNode("hub", "dc"))
	config := DefaultLayoutConfig()

	positions := ForceDirectedLayout(net, config)
	p := positions["hub"]
	if p.X != config.Width/2 || p.Y != config.Height/2 {
		t.Errorf("Single node at (%g, %g), want canvas center", p.X, p.Y)
	}
}

func TestForceDirectedLayout_SeparatesNodes(t *testing.T) {
	net := buildTestNetwork(t)
	positions := ForceDirectedLayout(net, DefaultLayoutConfig())

	ids := []string{"supplier", "port", "dc", "retailer"}
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			dist := math.Hypot(positions[a].X-positions[b].X, positions[a].Y-positions[b].Y)
			if dist < 1 {
				t.Errorf("Nodes %s and %s overlap (distance %g)", a, b, dist)
			}
		}
	}
}
