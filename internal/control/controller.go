// Package control runs the display's frame loop: sample the buttons, apply
// their mutations, render, step the automaton and reseed when it stalls.
package control

import (
	"context"
	"log"
	"time"

	hostcore "microlife/internal/core"
	"microlife/internal/input"
	"microlife/pkg/core"
	"microlife/pkg/sims/life"
)

// Board bundles the hardware collaborators the loop talks to.
type Board struct {
	Display core.Renderer
	Random  core.BitSource
	ButtonA core.Input
	ButtonB core.Input
}

// FrameReport summarizes what happened during one frame.
type FrameReport struct {
	Frame        uint64     `json:"frame"`
	Randomized   bool       `json:"randomized"`
	Complemented bool       `json:"complemented"`
	Stalled      bool       `json:"stalled"`
	Cause        life.Cause `json:"cause"`
	StallCount   uint       `json:"stall_count"`
	Reseeded     bool       `json:"reseeded"`
	IgnoreFrames uint       `json:"ignore_frames"`
	Population   int        `json:"population"`
	Grid         core.Grid  `json:"grid"`
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithObserver registers an observer that receives every FrameReport.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}

// WithGrid replaces the configured seed pattern with g.
func WithGrid(g core.Grid) Option {
	return func(c *Controller) {
		c.grid = g
		c.seeded = true
	}
}

// Controller owns the grid and every counter of the frame loop. It is not
// safe for concurrent use; one goroutine drives it.
type Controller struct {
	cfg   Config
	board Board

	grid       core.Grid
	seeded     bool
	complement *input.Debouncer
	stall      *life.StallDetector
	stallCount uint
	frame      uint64

	observers []Observer
	logger    *log.Logger
}

// New builds a Controller. A nil Display discards frames and a nil Random is
// replaced by an RNG seeded from cfg.Seed.
func New(cfg Config, board Board, opts ...Option) *Controller {
	cfg = cfg.normalized()
	if board.Display == nil {
		board.Display = core.RendererFunc(func(core.Grid, time.Duration) {})
	}
	if board.Random == nil {
		board.Random = core.NewRNG(cfg.Seed)
	}

	c := &Controller{
		cfg:        cfg,
		board:      board,
		complement: input.NewDebouncer(cfg.DebounceFrames),
		stall:      life.NewStallDetector(cfg.StallPeriod),
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.seeded {
		c.seed()
	}
	return c
}

func (c *Controller) seed() {
	if c.cfg.Pattern == PatternRandom {
		c.grid.Randomize(c.board.Random)
		c.logger.Printf("starting life from a random grid")
		return
	}
	g, ok := life.Pattern(c.cfg.Pattern)
	if !ok {
		c.logger.Printf("unknown pattern %q, starting from %q", c.cfg.Pattern, DefaultPattern)
		g = life.Cross()
	}
	c.grid = g
	c.logger.Printf("starting life from pattern %q", c.cfg.Pattern)
}

// Frame runs one pass of the loop and returns what happened.
func (c *Controller) Frame() FrameReport {
	r := FrameReport{Frame: c.frame}

	if input.Pressed(c.board.ButtonA) {
		c.grid.Randomize(c.board.Random)
		c.stall.Reset()
		r.Randomized = true
	}
	if c.complement.Poll(c.board.ButtonB) {
		c.grid.Complement()
		c.stall.Reset()
		r.Complemented = true
	}

	c.board.Display.Render(c.grid, c.cfg.FrameBudget)

	life.Step(&c.grid)

	r.Cause, r.Stalled = c.stall.Observe(c.grid)
	if r.Stalled {
		c.stallCount++
		if c.stallCount >= c.cfg.StallFrames {
			c.grid.Randomize(c.board.Random)
			c.stall.Reset()
			c.stallCount = 0
			r.Reseeded = true
		}
	} else {
		c.stallCount = 0
	}

	r.StallCount = c.stallCount
	r.IgnoreFrames = c.complement.Remaining()
	r.Population = c.grid.Population()
	r.Grid = c.grid
	c.frame++

	for _, o := range c.observers {
		o.ObserveFrame(r)
	}
	return r
}

// Run executes frames until ctx is done. With a context that is never
// cancelled it does not return.
func (c *Controller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		c.Frame()
	}
}

// AddObserver registers o after construction, for observers that need the
// Controller itself.
func (c *Controller) AddObserver(o Observer) {
	c.observers = append(c.observers, o)
}

// Grid returns a copy of the current grid.
func (c *Controller) Grid() core.Grid { return c.grid }

// SetGrid replaces the grid. Stall history is forgotten; the stall counter
// keeps running.
func (c *Controller) SetGrid(g core.Grid) {
	c.grid = g
	c.stall.Reset()
}

// Config returns the active configuration.
func (c *Controller) Config() Config { return c.cfg }

// StallCount returns the number of consecutive stalled frames so far.
func (c *Controller) StallCount() uint { return c.stallCount }

// Frames returns how many frames have run.
func (c *Controller) Frames() uint64 { return c.frame }

// Parameters exposes the thresholds and live counters for display.
func (c *Controller) Parameters() hostcore.ParameterSnapshot {
	return hostcore.ParameterSnapshot{Groups: []hostcore.ParameterGroup{
		{
			Name: "Loop",
			Params: []hostcore.Parameter{
				{
					Key:   "frame_ms",
					Label: "Frame budget",
					Type:  hostcore.ParamTypeDuration,
					Value: c.cfg.FrameBudget.String(),
				},
				hostcore.IntParam("stall_frames", "Stall frames", int(c.cfg.StallFrames)),
				hostcore.IntParam("debounce_frames", "Debounce frames", int(c.complement.Window())),
				hostcore.IntParam("stall_period", "Stall period", c.stall.Period()),
				{
					Key:   "pattern",
					Label: "Pattern",
					Type:  hostcore.ParamTypeString,
					Value: c.cfg.Pattern,
				},
			},
		},
		{
			Name: "State",
			Params: []hostcore.Parameter{
				hostcore.Int64Param("frame", "Frame", int64(c.frame)),
				hostcore.IntParam("stall_count", "Stall count", int(c.stallCount)),
				hostcore.IntParam("ignore_frames", "Ignore frames", int(c.complement.Remaining())),
				hostcore.IntParam("population", "Population", c.grid.Population()),
			},
		},
	}}
}

// ParameterControls lists the thresholds adjustable at runtime.
func (c *Controller) ParameterControls() []hostcore.ParameterControl {
	return []hostcore.ParameterControl{
		{Key: "stall_frames", Label: "Stall frames", Type: hostcore.ParamTypeInt, Step: 1, Min: 1, Max: 200, HasMin: true, HasMax: true},
		{Key: "debounce_frames", Label: "Debounce frames", Type: hostcore.ParamTypeInt, Step: 1, Min: 0, Max: 50, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates a runtime-adjustable threshold.
func (c *Controller) SetIntParameter(key string, value int) bool {
	switch key {
	case "stall_frames":
		if value <= 0 {
			return false
		}
		c.cfg.StallFrames = uint(value)
		return true
	case "debounce_frames":
		if value < 0 {
			return false
		}
		c.cfg.DebounceFrames = uint(value)
		c.complement.SetWindow(uint(value))
		return true
	default:
		return false
	}
}
