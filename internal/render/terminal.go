// Package render provides the display back ends for the control loop.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	hostcore "microlife/internal/core"
	"microlife/pkg/core"
)

const (
	ledOn  = "●"
	ledOff = "·"

	ansiRed   = "\x1b[31m"
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
)

// Terminal draws the matrix as text and holds each frame for its budget. From
// the second frame on it moves the cursor back up so frames overwrite each
// other.
type Terminal struct {
	out    io.Writer
	sleep  func(time.Duration)
	color  bool
	frames int
}

// NewTerminal returns a Terminal writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out, sleep: time.Sleep, color: true}
}

// SetColor toggles ANSI colors.
func (t *Terminal) SetColor(on bool) { t.color = on }

// Render writes g and blocks for d.
func (t *Terminal) Render(g core.Grid, d time.Duration) {
	var b strings.Builder
	if t.frames > 0 {
		fmt.Fprintf(&b, "\x1b[%dA", core.Size)
	}
	for r := 0; r < core.Size; r++ {
		for c := 0; c < core.Size; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(t.led(g.Alive(r, c)))
		}
		b.WriteByte('\n')
	}
	// Nothing useful can be done about a failed write to the terminal.
	_, _ = io.WriteString(t.out, b.String())
	t.frames++
	t.sleep(d)
}

// Reset forgets previous frames so the next one is drawn below the cursor.
func (t *Terminal) Reset() { t.frames = 0 }

func (t *Terminal) led(lit bool) string {
	switch {
	case !t.color && lit:
		return ledOn
	case !t.color:
		return ledOff
	case lit:
		return ansiRed + ledOn + ansiReset
	default:
		return ansiDim + ledOff + ansiReset
	}
}

// Null discards frames but still occupies the frame budget, unless sleeping
// is disabled for headless runs.
type Null struct {
	Sleep bool
}

// Render waits for d when n.Sleep is set.
func (n Null) Render(_ core.Grid, d time.Duration) {
	if n.Sleep {
		time.Sleep(d)
	}
}

func boolOption(cfg map[string]string, key string, def bool) (bool, error) {
	v, ok := cfg[key]
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("option %s: %w", key, err)
	}
	return b, nil
}

func init() {
	hostcore.RegisterRenderer("terminal", func(cfg map[string]string) (core.Renderer, error) {
		color, err := boolOption(cfg, "color", true)
		if err != nil {
			return nil, fmt.Errorf("terminal renderer: %w", err)
		}
		t := NewTerminal(os.Stdout)
		t.SetColor(color)
		return t, nil
	})
	hostcore.RegisterRenderer("null", func(cfg map[string]string) (core.Renderer, error) {
		sleep, err := boolOption(cfg, "sleep", true)
		if err != nil {
			return nil, fmt.Errorf("null renderer: %w", err)
		}
		return Null{Sleep: sleep}, nil
	})
}
