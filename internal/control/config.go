package control

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"microlife/pkg/sims/life"

	"github.com/joho/godotenv"
)

const (
	// DefaultFrameBudget shows each generation for 100ms, ten frames a second.
	DefaultFrameBudget = 100 * time.Millisecond
	// DefaultStallFrames is how many stalled frames in a row trigger a reseed.
	DefaultStallFrames = 20
	// DefaultDebounceFrames is the complement button's ignore window.
	DefaultDebounceFrames = 5
	// DefaultPattern is the image shown at power-on.
	DefaultPattern = "cross"
	// PatternRandom seeds the grid from the random source instead of a
	// literal pattern.
	PatternRandom = "random"

	// EnvPrefix marks environment variables that override Config fields.
	EnvPrefix = "MICROLIFE_"
)

// ErrUnknownPattern is returned by Validate for an unrecognized seed pattern.
var ErrUnknownPattern = errors.New("unknown pattern")

// Config holds the control loop's thresholds.
type Config struct {
	FrameBudget    time.Duration
	StallFrames    uint
	DebounceFrames uint
	// StallPeriod is the longest cycle treated as a stall. Zero only treats
	// an empty grid as stalled.
	StallPeriod int
	Pattern     string
	Seed        int64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		FrameBudget:    DefaultFrameBudget,
		StallFrames:    DefaultStallFrames,
		DebounceFrames: DefaultDebounceFrames,
		StallPeriod:    life.DefaultPeriod,
		Pattern:        DefaultPattern,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().Apply(cfg)
}

// Apply overlays recognized keys from cfg onto c. Values that fail to parse
// or fall out of range are ignored. frame_ms and fps both set the frame
// budget; a valid fps takes precedence over frame_ms.
func (c Config) Apply(cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	if v, ok := cfg["frame_ms"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.FrameBudget = time.Duration(parsed) * time.Millisecond
		}
	}
	if v, ok := cfg["fps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.FrameBudget = time.Second / time.Duration(parsed)
		}
	}
	if v, ok := cfg["stall_frames"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 32); err == nil && parsed > 0 {
			c.StallFrames = uint(parsed)
		}
	}
	if v, ok := cfg["debounce_frames"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 32); err == nil {
			c.DebounceFrames = uint(parsed)
		}
	}
	if v, ok := cfg["stall_period"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.StallPeriod = parsed
		}
	}
	if v, ok := cfg["pattern"]; ok {
		if v == PatternRandom {
			c.Pattern = v
		} else if _, known := life.Pattern(v); known {
			c.Pattern = v
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}

// Validate reports settings the control loop cannot honor.
func (c Config) Validate() error {
	if c.Pattern != PatternRandom {
		if _, ok := life.Pattern(c.Pattern); !ok {
			return fmt.Errorf("%w %q", ErrUnknownPattern, c.Pattern)
		}
	}
	if c.StallFrames == 0 {
		return errors.New("stall frames must be positive")
	}
	if c.FrameBudget <= 0 {
		return errors.New("frame budget must be positive")
	}
	return nil
}

func (c Config) normalized() Config {
	if c.FrameBudget <= 0 {
		c.FrameBudget = DefaultFrameBudget
	}
	if c.StallFrames == 0 {
		c.StallFrames = 1
	}
	if c.StallPeriod < 0 {
		c.StallPeriod = 0
	}
	if c.Pattern == "" {
		c.Pattern = DefaultPattern
	}
	return c
}

// LoadEnv overlays MICROLIFE_* settings onto c. Files are read first with
// godotenv; variables already set in the process environment win. Missing
// files are skipped.
func (c Config) LoadEnv(paths ...string) (Config, error) {
	merged := map[string]string{}
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return c, fmt.Errorf("reading %s: %w", path, err)
		}
		for k, v := range values {
			merged[k] = v
		}
	}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, EnvPrefix) {
			merged[k] = v
		}
	}

	keyed := make(map[string]string, len(merged))
	for k, v := range merged {
		if !strings.HasPrefix(k, EnvPrefix) {
			continue
		}
		keyed[strings.ToLower(strings.TrimPrefix(k, EnvPrefix))] = v
	}
	return c.Apply(keyed), nil
}
