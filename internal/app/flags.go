package app

import (
	"fmt"
	"time"

	"microlife/internal/control"

	"github.com/spf13/pflag"
)

// Flags represents the command-line parameters shared by the host commands.
type Flags struct {
	FrameMS        int
	StallFrames    uint
	DebounceFrames uint
	StallPeriod    int
	Pattern        string
	Seed           int64
	EnvFile        string

	Renderer  string
	Color     bool
	Scale     int
	Monitor   string
	Trace     string
	TracePath string
	Verbose   bool
}

// NewFlags returns Flags populated with the control loop's defaults.
func NewFlags() *Flags {
	cfg := control.DefaultConfig()
	return &Flags{
		FrameMS:        int(cfg.FrameBudget / time.Millisecond),
		StallFrames:    cfg.StallFrames,
		DebounceFrames: cfg.DebounceFrames,
		StallPeriod:    cfg.StallPeriod,
		Pattern:        cfg.Pattern,
		EnvFile:        ".env",
		Renderer:       "terminal",
		Color:          true,
		Scale:          1,
	}
}

// BindLoop attaches the control-loop thresholds to the provided FlagSet.
func (f *Flags) BindLoop(fs *pflag.FlagSet) {
	fs.IntVar(&f.FrameMS, "frame-ms", f.FrameMS, "milliseconds each generation is shown")
	fs.UintVar(&f.StallFrames, "stall-frames", f.StallFrames, "stalled frames in a row before reseeding")
	fs.UintVar(&f.DebounceFrames, "debounce-frames", f.DebounceFrames, "frames button B is ignored after it fires")
	fs.IntVar(&f.StallPeriod, "stall-period", f.StallPeriod, "longest cycle treated as a stall (0: only an empty grid)")
	fs.StringVar(&f.Pattern, "pattern", f.Pattern, "seed pattern, or \"random\"")
	fs.Int64Var(&f.Seed, "seed", f.Seed, "random seed (0 picks one from the clock)")
	fs.StringVar(&f.EnvFile, "env-file", f.EnvFile, "dotenv file with MICROLIFE_* overrides")
}

// BindHost attaches terminal display and monitor options to the provided FlagSet.
func (f *Flags) BindHost(fs *pflag.FlagSet) {
	fs.StringVar(&f.Renderer, "renderer", f.Renderer, "display back end (terminal, null)")
	fs.BoolVar(&f.Color, "color", f.Color, "use ANSI colors in the terminal")
	fs.StringVar(&f.Monitor, "monitor", f.Monitor, "serve the monitor API on this address, e.g. :8080")
}

// BindWindow attaches window-only options to the provided FlagSet.
func (f *Flags) BindWindow(fs *pflag.FlagSet) {
	fs.IntVar(&f.Scale, "scale", f.Scale, "window scale multiplier")
}

// BindDiagnostics attaches tracing and logging options to the provided
// FlagSet.
func (f *Flags) BindDiagnostics(fs *pflag.FlagSet) {
	fs.StringVar(&f.Trace, "trace", f.Trace, "record frames as csv or sqlite")
	fs.StringVar(&f.TracePath, "trace-path", f.TracePath, "trace file name without extension")
	fs.BoolVarP(&f.Verbose, "verbose", "v", f.Verbose, "log every frame")
}

// Config resolves the loop configuration: defaults, then the env file and
// MICROLIFE_* variables, then any flags set explicitly on fs.
func (f *Flags) Config(fs *pflag.FlagSet) (control.Config, error) {
	cfg, err := control.DefaultConfig().LoadEnv(f.EnvFile)
	if err != nil {
		return cfg, fmt.Errorf("loading environment: %w", err)
	}

	if fs.Changed("frame-ms") {
		cfg.FrameBudget = time.Duration(f.FrameMS) * time.Millisecond
	}
	if fs.Changed("stall-frames") {
		cfg.StallFrames = f.StallFrames
	}
	if fs.Changed("debounce-frames") {
		cfg.DebounceFrames = f.DebounceFrames
	}
	if fs.Changed("stall-period") {
		cfg.StallPeriod = f.StallPeriod
	}
	if fs.Changed("pattern") {
		cfg.Pattern = f.Pattern
	}
	if fs.Changed("seed") {
		cfg.Seed = f.Seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
