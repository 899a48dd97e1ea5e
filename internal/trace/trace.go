// Package trace records one row per control-loop frame for offline analysis.
package trace

import (
	"errors"
	"fmt"

	"microlife/internal/control"
	"microlife/pkg/core"

	"github.com/rs/xid"
)

// ErrUnknownFormat is returned by New for an unsupported trace format.
var ErrUnknownFormat = errors.New("unknown trace format")

// DefaultPrefix starts every generated trace file name.
const DefaultPrefix = "microlife_trace_"

// Record is one traced frame.
type Record struct {
	RunID        string
	Frame        uint64
	Population   int
	Randomized   bool
	Complemented bool
	Stalled      bool
	Cause        string
	StallCount   uint
	IgnoreFrames uint
	Reseeded     bool
	Grid         string
}

// Writer stores trace records.
type Writer interface {
	Init() error
	Write(r Record)
	Flush()
	Close() error
}

// New builds a writer for format ("csv" or "sqlite"). An empty path picks a
// unique file name in the working directory.
func New(format, path string) (Writer, error) {
	switch format {
	case "csv":
		return NewCSVTraceWriter(path), nil
	case "sqlite":
		return NewSQLiteTraceWriter(path), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

func defaultPath() string {
	return DefaultPrefix + xid.New().String()
}

// Tracer turns frame reports into records. It is a control.Observer.
type Tracer struct {
	runID  string
	writer Writer
}

// NewTracer tags every record with a fresh run id.
func NewTracer(w Writer) *Tracer {
	return &Tracer{runID: xid.New().String(), writer: w}
}

// RunID identifies the records of this tracer.
func (t *Tracer) RunID() string { return t.runID }

// ObserveFrame writes one record for r.
func (t *Tracer) ObserveFrame(r control.FrameReport) {
	t.writer.Write(Record{
		RunID:        t.runID,
		Frame:        r.Frame,
		Population:   r.Population,
		Randomized:   r.Randomized,
		Complemented: r.Complemented,
		Stalled:      r.Stalled,
		Cause:        r.Cause.String(),
		StallCount:   r.StallCount,
		IgnoreFrames: r.IgnoreFrames,
		Reseeded:     r.Reseeded,
		Grid:         gridBits(r.Grid),
	})
}

// gridBits encodes the grid as 25 row-major '0'/'1' characters.
func gridBits(g core.Grid) string {
	cells := g.Cells()
	b := make([]byte, len(cells))
	for i, c := range cells {
		b[i] = '0' + c
	}
	return string(b)
}
