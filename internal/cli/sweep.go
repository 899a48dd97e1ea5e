package cli

import (
	"microlife/internal/app"
	"microlife/internal/sweep"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSweepCmd())
}

func newSweepCmd() *cobra.Command {
	flags := app.NewFlags()
	opts := sweep.Options{FirstSeed: 1, Runs: 200, Frames: 1000}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Measure how often random boards stall.",
		Long: "Run many seeded boards headless and report how often the " +
			"stall detector reseeds them under the given thresholds.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.Config(cmd.Flags())
			if err != nil {
				return err
			}
			opts.Config = cfg
			summary, err := sweep.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			summary.Report(cmd.OutOrStdout(), sweep.NewPrinter())
			return nil
		},
	}
	flags.BindLoop(cmd.Flags())
	cmd.Flags().Int64Var(&opts.FirstSeed, "first-seed", opts.FirstSeed, "seed of the first run")
	cmd.Flags().IntVar(&opts.Runs, "runs", opts.Runs, "number of seeds to evaluate")
	cmd.Flags().IntVar(&opts.Frames, "frames", opts.Frames, "frames per run")
	cmd.Flags().IntVar(&opts.Workers, "workers", opts.Workers, "parallel runs (0: one per CPU)")
	return cmd
}
