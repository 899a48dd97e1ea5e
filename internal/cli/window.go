package cli

import (
	"microlife/internal/app"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newWindowCmd())
}

func newWindowCmd() *cobra.Command {
	flags := app.NewFlags()
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Show the LED matrix in a desktop window.",
		Long: "Show the LED matrix in a desktop window. A and B are the " +
			"buttons, Space pauses, N steps once, Q or Esc quits. Requires a " +
			"build with the ebiten tag.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.Config(cmd.Flags())
			if err != nil {
				return err
			}
			logger := newLogger()
			opts, closeTrace, err := diagnostics(flags, logger)
			if err != nil {
				return err
			}
			defer closeTrace()
			return app.Run(cfg, flags.Scale, opts...)
		},
	}
	flags.BindLoop(cmd.Flags())
	flags.BindWindow(cmd.Flags())
	flags.BindDiagnostics(cmd.Flags())
	return cmd
}
