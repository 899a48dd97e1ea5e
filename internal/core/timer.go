package core

import "time"

// DefaultFrameBudget is used when a FixedStep is created with a non-positive
// budget.
const DefaultFrameBudget = 100 * time.Millisecond

// FixedStep helps run control-loop frames at a steady rate when the host
// drives the loop itself instead of blocking inside Render.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller that fires once per budget.
func NewFixedStep(budget time.Duration) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetBudget(budget)
	fs.accumulator = fs.step
	return fs
}

// SetBudget changes the frame length. It is safe to call from the main loop.
func (f *FixedStep) SetBudget(budget time.Duration) {
	if budget <= 0 {
		budget = DefaultFrameBudget
	}
	f.step = budget
}

// Budget returns the current frame length.
func (f *FixedStep) Budget() time.Duration { return f.step }

// ShouldStep reports whether a frame's budget has elapsed.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
