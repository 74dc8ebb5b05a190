// Package visualization computes 2D positions for supply chain network
// diagrams. It consumes only the network topology; rendering is left to
// external tooling.
package visualization

import (
	"math"
	"math/rand"
	"sort"

	"github.com/dd0wney/stockflow/pkg/network"
)

// Position is a node coordinate in layout space.
type Position struct {
	X float64
	Y float64
}

// LayoutConfig controls the layout canvas and iteration count.
type LayoutConfig struct {
	Width      float64
	Height     float64
	Padding    float64
	Iterations int
	Seed       int64
}

// DefaultLayoutConfig returns a canvas suitable for small networks.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Width:      800,
		Height:     600,
		Padding:    50,
		Iterations: 50,
		Seed:       1,
	}
}

// sortedNodeIDs gives layouts a stable node ordering.
func sortedNodeIDs(net *network.Network) []string {
	ids := net.NodeIDs()
	sort.Strings(ids)
	return ids
}

// CircularLayout arranges nodes evenly on a circle.
func CircularLayout(net *network.Network, config LayoutConfig) map[string]Position {
	positions := make(map[string]Position)
	ids := sortedNodeIDs(net)
	if len(ids) == 0 {
		return positions
	}

	centerX := config.Width / 2
	centerY := config.Height / 2
	radius := math.Min(centerX, centerY) - config.Padding

	angleStep := 2 * math.Pi / float64(len(ids))
	for i, id := range ids {
		angle := float64(i) * angleStep
		positions[id] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}
	return positions
}

// ForceDirectedLayout positions nodes with a Fruchterman-Reingold style
// spring embedding: all pairs repel, edges attract, temperature cools each
// iteration. Seeded so a given network always lays out the same way.
func ForceDirectedLayout(net *network.Network, config LayoutConfig) map[string]Position {
	ids := sortedNodeIDs(net)
	positions := make(map[string]Position)
	if len(ids) == 0 {
		return positions
	}
	if len(ids) == 1 {
		positions[ids[0]] = Position{X: config.Width / 2, Y: config.Height / 2}
		return positions
	}
	if config.Iterations <= 0 {
		config.Iterations = 50
	}

	rng := rand.New(rand.NewSource(config.Seed))
	for _, id := range ids {
		positions[id] = Position{
			X: rng.Float64()*(config.Width-2*config.Padding) + config.Padding,
			Y: rng.Float64()*(config.Height-2*config.Padding) + config.Padding,
		}
	}

	// Undirected adjacency for attraction
	adjacent := make(map[string]map[string]bool, len(ids))
	for _, id := range ids {
		adjacent[id] = make(map[string]bool)
	}
	for _, e := range net.Edges() {
		adjacent[e.From][e.To] = true
		adjacent[e.To][e.From] = true
	}

	k := math.Sqrt((config.Width * config.Height) / float64(len(ids)))
	temperature := config.Width / 10

	for iter := 0; iter < config.Iterations; iter++ {
		forces := make(map[string]Position, len(ids))

		// Repulsion between all pairs
		for i, a := range ids {
			for j := i + 1; j < len(ids); j++ {
				b := ids[j]
				dx := positions[a].X - positions[b].X
				dy := positions[a].Y - positions[b].Y
				dist := math.Hypot(dx, dy)
				if dist < 0.01 {
					dist = 0.01
				}

				repulse := k * k / dist
				fx := dx / dist * repulse
				fy := dy / dist * repulse
				forces[a] = Position{X: forces[a].X + fx, Y: forces[a].Y + fy}
				forces[b] = Position{X: forces[b].X - fx, Y: forces[b].Y - fy}
			}
		}

		// Attraction along edges
		for _, a := range ids {
			for b := range adjacent[a] {
				if a >= b {
					continue
				}
				dx := positions[a].X - positions[b].X
				dy := positions[a].Y - positions[b].Y
				dist := math.Hypot(dx, dy)
				if dist < 0.01 {
					dist = 0.01
				}

				attract := dist * dist / k
				fx := dx / dist * attract
				fy := dy / dist * attract
				forces[a] = Position{X: forces[a].X - fx, Y: forces[a].Y - fy}
				forces[b] = Position{X: forces[b].X + fx, Y: forces[b].Y + fy}
			}
		}

		// Apply displacement capped by temperature, clamp to canvas
		for _, id := range ids {
			f := forces[id]
			mag := math.Hypot(f.X, f.Y)
			if mag < 0.01 {
				continue
			}
			step := math.Min(mag, temperature)
			positions[id] = Position{
				X: clamp(positions[id].X+f.X/mag*step, config.Padding, config.Width-config.Padding),
				Y: clamp(positions[id].Y+f.Y/mag*step, config.Padding, config.Height-config.Padding),
			}
		}

		temperature *= 0.95
	}

	return positions
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
