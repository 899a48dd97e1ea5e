package life

import "microlife/pkg/core"

// Cause classifies why a grid was judged stalled.
type Cause uint8

const (
	// CauseNone means the grid is still evolving.
	CauseNone Cause = iota
	// CauseExtinct means every cell is dead.
	CauseExtinct
	// CauseStill means the grid did not change over the last step.
	CauseStill
	// CauseOscillating means the grid repeats a state seen a few steps ago.
	CauseOscillating
)

func (c Cause) String() string {
	switch c {
	case CauseExtinct:
		return "extinct"
	case CauseStill:
		return "still"
	case CauseOscillating:
		return "oscillating"
	default:
		return "none"
	}
}

// DefaultPeriod is the longest cycle StallDetector looks for by default.
// Period 2 covers blinkers, the only oscillators that fit on a 5x5 board in
// practice.
const DefaultPeriod = 2

// StallDetector judges post-step grids. Extinction is always a stall; with a
// positive Period, a grid that repeats one of the last Period observations is
// one too.
type StallDetector struct {
	period  int
	history []core.Grid
}

// NewStallDetector returns a detector looking for cycles up to period. A
// period of zero or less only detects extinction.
func NewStallDetector(period int) *StallDetector {
	if period < 0 {
		period = 0
	}
	return &StallDetector{period: period, history: make([]core.Grid, 0, period)}
}

// Period returns the longest detected cycle length.
func (d *StallDetector) Period() int { return d.period }

// Observe records g and reports whether it is stalled and why.
func (d *StallDetector) Observe(g core.Grid) (Cause, bool) {
	cause := d.classify(g)
	if d.period > 0 {
		if len(d.history) == d.period {
			copy(d.history, d.history[1:])
			d.history = d.history[:d.period-1]
		}
		d.history = append(d.history, g)
	}
	return cause, cause != CauseNone
}

func (d *StallDetector) classify(g core.Grid) Cause {
	if IsStalled(g) {
		return CauseExtinct
	}
	// history is oldest-first; walk back from the latest observation.
	for i := len(d.history) - 1; i >= 0; i-- {
		if d.history[i] != g {
			continue
		}
		if i == len(d.history)-1 {
			return CauseStill
		}
		return CauseOscillating
	}
	return CauseNone
}

// Reset forgets every recorded generation.
func (d *StallDetector) Reset() {
	d.history = d.history[:0]
}

// MarshalText encodes the cause by name.
func (c Cause) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
