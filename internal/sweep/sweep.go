// Package sweep runs the control loop headless across many seeds and
// summarizes how quickly and why the grid stalls.
package sweep

import (
	"context"
	"errors"
	"io"
	"log"
	"runtime"

	"microlife/internal/control"
	"microlife/internal/render"
	"microlife/pkg/sims/life"

	"golang.org/x/sync/errgroup"
)

// Options controls a sweep.
type Options struct {
	Config    control.Config
	FirstSeed int64
	Runs      int
	Frames    int
	Workers   int
}

// RunResult describes one seed's run.
type RunResult struct {
	Seed           int64
	Frames         int
	Reseeds        int
	FirstReseed    int
	Causes         map[life.Cause]int
	MeanPopulation float64
}

// Summary aggregates every run of a sweep.
type Summary struct {
	Runs            []RunResult
	Frames          int
	TotalReseeds    int
	NeverStalled    int
	MeanFirstReseed float64
	MeanPopulation  float64
	Causes          map[life.Cause]int
}

// ReseedsPerThousand normalizes reseeds by the number of simulated frames.
func (s Summary) ReseedsPerThousand() float64 {
	total := s.Frames * len(s.Runs)
	if total == 0 {
		return 0
	}
	return float64(s.TotalReseeds) * 1000 / float64(total)
}

// Evaluate runs one seed for the given number of frames with idle buttons
// and a display that does not wait. FirstReseed is -1 when the run never
// reseeds.
func Evaluate(cfg control.Config, seed int64, frames int) RunResult {
	cfg.Seed = seed
	cfg.Pattern = control.PatternRandom

	res := RunResult{Seed: seed, Frames: frames, FirstReseed: -1, Causes: map[life.Cause]int{}}
	population := 0
	c := control.New(cfg, control.Board{Display: render.Null{}},
		control.WithLogger(log.New(io.Discard, "", 0)),
		control.WithObserver(control.ObserverFunc(func(r control.FrameReport) {
			population += r.Population
			if !r.Reseeded {
				return
			}
			res.Reseeds++
			res.Causes[r.Cause]++
			if res.FirstReseed < 0 {
				res.FirstReseed = int(r.Frame)
			}
		})),
	)
	for i := 0; i < frames; i++ {
		c.Frame()
	}
	if frames > 0 {
		res.MeanPopulation = float64(population) / float64(frames)
	}
	return res
}

// Run evaluates opts.Runs consecutive seeds on a bounded worker pool.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.Runs <= 0 || opts.Frames <= 0 {
		return Summary{}, errors.New("sweep needs positive runs and frames")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]RunResult, opts.Runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < opts.Runs; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Evaluate(opts.Config, opts.FirstSeed+int64(i), opts.Frames)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return summarize(results, opts.Frames), nil
}

func summarize(results []RunResult, frames int) Summary {
	s := Summary{Runs: results, Frames: frames, Causes: map[life.Cause]int{}}
	firstSum, firstCount := 0, 0
	popSum := 0.0
	for _, r := range results {
		s.TotalReseeds += r.Reseeds
		for cause, n := range r.Causes {
			s.Causes[cause] += n
		}
		if r.FirstReseed < 0 {
			s.NeverStalled++
		} else {
			firstSum += r.FirstReseed
			firstCount++
		}
		popSum += r.MeanPopulation
	}
	if firstCount > 0 {
		s.MeanFirstReseed = float64(firstSum) / float64(firstCount)
	}
	if len(results) > 0 {
		s.MeanPopulation = popSum / float64(len(results))
	}
	return s
}
