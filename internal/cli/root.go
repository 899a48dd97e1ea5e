// Package cli provides the microlife command-line interface.
package cli

import (
	"log"
	"os"

	"microlife/internal/app"
	"microlife/internal/control"
	"microlife/internal/trace"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "microlife",
	Short: "Run Conway's Game of Life on a 5x5 LED matrix.",
	Long: `microlife drives a 5x5 Game of Life display: button A randomizes ` +
		`the board, button B inverts it, and a board that stops changing is ` +
		`reseeded automatically.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Registered exit handlers, such as trace writers, run before
// the process exits.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "microlife: ", log.LstdFlags)
}

// diagnostics builds the observers requested by the diagnostics flags. The
// returned close function flushes any trace writer.
func diagnostics(flags *app.Flags, logger *log.Logger) ([]control.Option, func(), error) {
	opts := []control.Option{
		control.WithLogger(logger),
		control.WithObserver(control.LogObserver{Logger: logger, Verbose: flags.Verbose}),
	}
	if flags.Trace == "" {
		return opts, func() {}, nil
	}

	w, err := trace.New(flags.Trace, flags.TracePath)
	if err != nil {
		return nil, nil, err
	}
	if err := w.Init(); err != nil {
		return nil, nil, err
	}
	tracer := trace.NewTracer(w)
	logger.Printf("tracing run %s as %s", tracer.RunID(), flags.Trace)
	opts = append(opts, control.WithObserver(tracer))
	return opts, func() {
		if err := w.Close(); err != nil {
			logger.Printf("closing trace: %v", err)
		}
	}, nil
}
