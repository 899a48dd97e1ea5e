// Package life implements Conway's Game of Life on the bounded 5x5 display
// grid. Cells beyond the edge are treated as permanently dead.
package life

import "microlife/pkg/core"

// Neighbors counts the live cells adjacent to (r, c). Edge and corner cells
// have fewer than eight neighbors since the grid does not wrap.
func Neighbors(g core.Grid, r, c int) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n += int(g.Get(r+dr, c+dc))
		}
	}
	return n
}

// Step advances the grid by one generation in place.
func Step(g *core.Grid) {
	prev := *g
	for r := 0; r < core.Size; r++ {
		for c := 0; c < core.Size; c++ {
			neighbors := Neighbors(prev, r, c)
			alive := prev[r][c] == 1
			g[r][c] = 0
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				g[r][c] = 1
			}
		}
	}
}

// IsStalled reports whether the grid has died out completely.
func IsStalled(g core.Grid) bool {
	return g.Dead()
}
