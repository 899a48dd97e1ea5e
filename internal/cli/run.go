package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"unicode"

	"microlife/internal/app"
	"microlife/internal/control"
	hostcore "microlife/internal/core"
	"microlife/internal/input"
	"microlife/internal/monitor"
	_ "microlife/internal/render"
	"microlife/pkg/core"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	flags := app.NewFlags()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the display loop in the terminal.",
		Long: "Run the display loop in the terminal. Type a or b followed by " +
			"Enter to press a button; interrupt to stop.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTerminal(cmd, flags)
		},
	}
	flags.BindLoop(cmd.Flags())
	flags.BindHost(cmd.Flags())
	flags.BindDiagnostics(cmd.Flags())
	return cmd
}

func runTerminal(cmd *cobra.Command, flags *app.Flags) error {
	cfg, err := flags.Config(cmd.Flags())
	if err != nil {
		return err
	}
	logger := newLogger()

	display, err := hostcore.NewRenderer(flags.Renderer, rendererOptions(flags))
	if err != nil {
		return err
	}

	opts, closeTrace, err := diagnostics(flags, logger)
	if err != nil {
		return err
	}
	defer closeTrace()

	buttonA, buttonB := &input.Latch{}, &input.Latch{}
	ctrl := control.New(cfg, control.Board{
		Display: display,
		Random:  core.NewRNG(cfg.Seed),
		ButtonA: buttonA,
		ButtonB: buttonB,
	}, opts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flags.Monitor != "" {
		mon := monitor.NewMonitor(ctrl)
		mon.RegisterButton("a", buttonA)
		mon.RegisterButton("b", buttonB)
		addr, err := mon.StartServer(ctx, flags.Monitor)
		if err != nil {
			return err
		}
		ctrl.AddObserver(mon)
		logger.Printf("monitor listening on http://%s", addr)
	}

	go readButtons(cmd.InOrStdin(), buttonA, buttonB, logger)

	err = ctrl.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Printf("stopped after %d frames", ctrl.Frames())
		return nil
	}
	return err
}

// rendererOptions returns the factory options the selected renderer reads.
func rendererOptions(flags *app.Flags) map[string]string {
	switch flags.Renderer {
	case "terminal":
		return map[string]string{"color": strconv.FormatBool(flags.Color)}
	case "null":
		return map[string]string{"sleep": "true"}
	default:
		return nil
	}
}

// readButtons presses A or B once for every 'a' or 'b' read from r.
func readButtons(r io.Reader, a, b *input.Latch, logger *log.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		for _, ch := range scanner.Text() {
			switch unicode.ToLower(ch) {
			case 'a':
				a.Press(1)
			case 'b':
				b.Press(1)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Printf("reading buttons: %v", err)
	}
}
