package input

import "microlife/pkg/core"

// Debouncer turns a level-sensitive button into a rate-limited trigger. After
// it fires, the following Window-1 polls are ignored without reading the
// input, so a held button fires at most once every Window frames.
type Debouncer struct {
	window    uint
	remaining uint
}

// NewDebouncer returns a Debouncer with the given window. A zero window fires
// on every pressed poll.
func NewDebouncer(window uint) *Debouncer {
	return &Debouncer{window: window}
}

// Window returns the configured window length in frames.
func (d *Debouncer) Window() uint { return d.window }

// SetWindow changes the window length. A countdown already running is
// clamped to the new length.
func (d *Debouncer) SetWindow(window uint) {
	d.window = window
	if d.remaining > window {
		d.remaining = window
	}
}

// Remaining returns the frames left before the input is read again.
func (d *Debouncer) Remaining() uint {
	if d.remaining == 0 {
		return 0
	}
	return d.remaining - 1
}

// Poll runs once per frame and reports whether the guarded action fires.
func (d *Debouncer) Poll(in core.Input) bool {
	if d.remaining > 0 {
		d.remaining--
		if d.remaining > 0 {
			return false
		}
	}
	if !Pressed(in) {
		return false
	}
	d.remaining = d.window
	return true
}

// Reset clears any running countdown.
func (d *Debouncer) Reset() { d.remaining = 0 }
