package render

import (
	"time"

	"microlife/pkg/core"
)

// Latest keeps the most recently rendered grid without blocking. Hosts that
// pace frames themselves, like the window, draw from it.
type Latest struct {
	grid   core.Grid
	budget time.Duration
	frames uint64
}

// Render records g.
func (l *Latest) Render(g core.Grid, d time.Duration) {
	l.grid = g
	l.budget = d
	l.frames++
}

// Grid returns the last rendered grid.
func (l *Latest) Grid() core.Grid { return l.grid }

// Budget returns the frame budget passed with the last grid.
func (l *Latest) Budget() time.Duration { return l.budget }

// Frames returns how many grids have been rendered.
func (l *Latest) Frames() uint64 { return l.frames }
