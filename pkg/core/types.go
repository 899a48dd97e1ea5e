package core

import "time"

// Renderer shows a grid for roughly d before returning.
type Renderer interface {
	Render(g Grid, d time.Duration)
}

// Input is one digital input line, typically a push button.
type Input interface {
	IsPressed() (bool, error)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(g Grid, d time.Duration)

// Render calls f.
func (f RendererFunc) Render(g Grid, d time.Duration) { f(g, d) }
