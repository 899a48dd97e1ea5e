package core

import "strings"

// Size is the edge length of the LED matrix. The grid is always Size x Size.
const Size = 5

// Grid stores the binary matrix shown on the display, indexed [row][col].
type Grid [Size][Size]uint8

// FromRows builds a grid from a literal pattern. Any non-zero value is stored
// as a live cell.
func FromRows(rows [Size][Size]uint8) Grid {
	var g Grid
	for r := range rows {
		for c, v := range rows[r] {
			g.Set(r, c, v)
		}
	}
	return g
}

// InBounds reports whether (r, c) addresses a cell on the grid.
func InBounds(r, c int) bool {
	return r >= 0 && r < Size && c >= 0 && c < Size
}

// Get returns the cell value at (r, c). Out-of-range coordinates read as dead.
func (g Grid) Get(r, c int) uint8 {
	if !InBounds(r, c) {
		return 0
	}
	return g[r][c]
}

// Alive reports whether the cell at (r, c) is live.
func (g Grid) Alive(r, c int) bool { return g.Get(r, c) == 1 }

// Set stores v at (r, c). Writes outside the grid are ignored.
func (g *Grid) Set(r, c int, v uint8) {
	if !InBounds(r, c) {
		return
	}
	if v != 0 {
		v = 1
	}
	g[r][c] = v
}

// Clear kills every cell.
func (g *Grid) Clear() {
	*g = Grid{}
}

// Population counts the live cells.
func (g Grid) Population() int {
	n := 0
	for r := range g {
		for c := range g[r] {
			n += int(g[r][c])
		}
	}
	return n
}

// Dead reports whether no cell is live.
func (g Grid) Dead() bool { return g.Population() == 0 }

// Randomize overwrites every cell with an independent bit from src.
func (g *Grid) Randomize(src BitSource) {
	for r := range g {
		for c := range g[r] {
			g[r][c] = 0
			if src.NextBit() {
				g[r][c] = 1
			}
		}
	}
}

// Complement flips every cell.
func (g *Grid) Complement() {
	for r := range g {
		for c := range g[r] {
			g[r][c] ^= 1
		}
	}
}

// Cells returns a row-major copy of the grid for renderers that work on flat
// buffers.
func (g Grid) Cells() []uint8 {
	out := make([]uint8, 0, Size*Size)
	for r := range g {
		out = append(out, g[r][:]...)
	}
	return out
}

// String renders the grid as five lines of '#' and '.'.
func (g Grid) String() string {
	var b strings.Builder
	b.Grow(Size * (Size + 1))
	for r := range g {
		for c := range g[r] {
			if g[r][c] == 1 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		if r < Size-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
