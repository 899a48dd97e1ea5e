// Package input samples the board's push buttons and rate-limits the actions
// they trigger.
package input

import (
	"errors"
	"sync"

	"microlife/pkg/core"
)

// ErrNotConnected is reported by inputs that have no line behind them.
var ErrNotConnected = errors.New("input not connected")

// Pressed samples in once. A nil input, a failed read and a false read all
// count as not pressed.
func Pressed(in core.Input) bool {
	if in == nil {
		return false
	}
	pressed, err := in.IsPressed()
	return err == nil && pressed
}

// Unwired is an input with no line attached. Every read fails.
type Unwired struct{}

// IsPressed always returns ErrNotConnected.
func (Unwired) IsPressed() (bool, error) { return false, ErrNotConnected }

// Latch is a momentary button that other goroutines can press. Each Press
// holds the button down for a number of reads.
type Latch struct {
	mu   sync.Mutex
	held int
}

// Press holds the latch down for the next reads calls to IsPressed.
func (l *Latch) Press(reads int) {
	if reads <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held += reads
}

// Release drops any pending presses.
func (l *Latch) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = 0
}

// IsPressed consumes one pending press.
func (l *Latch) IsPressed() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held == 0 {
		return false, nil
	}
	l.held--
	return true, nil
}
