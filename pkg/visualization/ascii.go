package visualization

import (
	"sort"
	"strings"
)

// SketchConfig sizes the character grid for ASCII rendering.
type SketchConfig struct {
	Columns int
	Rows    int
}

// DefaultSketchConfig fits a terminal at 80 columns.
func DefaultSketchConfig() SketchConfig {
	return SketchConfig{Columns: 60, Rows: 16}
}

// Sketch renders node positions onto a character grid, each node drawn as a
// marker followed by its ID, truncated when the label would run off the
// canvas. Positions typically come from CircularLayout or ForceDirectedLayout.
func Sketch(positions map[string]Position, config SketchConfig) string {
	if len(positions) == 0 || config.Columns < 4 || config.Rows < 2 {
		return ""
	}

	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	minX, minY := positions[ids[0]].X, positions[ids[0]].Y
	maxX, maxY := minX, minY
	for _, p := range positions {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	grid := make([][]byte, config.Rows)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", config.Columns))
	}

	for _, id := range ids {
		p := positions[id]
		col := int((p.X - minX) / spanX * float64(config.Columns-1))
		row := int((p.Y - minY) / spanY * float64(config.Rows-1))

		grid[row][col] = 'o'
		for i := 0; i < len(id) && col+1+i < config.Columns; i++ {
			grid[row][col+1+i] = id[i]
		}
	}

	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}
