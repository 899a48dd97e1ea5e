package control

import "log"

// Observer receives a report at the end of every frame, on the loop
// goroutine.
type Observer interface {
	ObserveFrame(r FrameReport)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(r FrameReport)

// ObserveFrame calls f.
func (f ObserverFunc) ObserveFrame(r FrameReport) { f(r) }

// LogObserver writes diagnostics for reseeds and button actions. With
// Verbose set it also logs a line per frame.
type LogObserver struct {
	Logger  *log.Logger
	Verbose bool
}

// ObserveFrame logs the interesting parts of r.
func (o LogObserver) ObserveFrame(r FrameReport) {
	l := o.Logger
	if l == nil {
		l = log.Default()
	}
	if r.Randomized {
		l.Printf("frame %d: button A randomized the grid", r.Frame)
	}
	if r.Complemented {
		l.Printf("frame %d: button B complemented the grid", r.Frame)
	}
	if r.Reseeded {
		l.Printf("frame %d: reseeded after %s stall", r.Frame, r.Cause)
	}
	if o.Verbose {
		l.Printf("frame %d: population %d, stall %d", r.Frame, r.Population, r.StallCount)
	}
}
