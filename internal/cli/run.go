package cli

import (
	"time"

	"github.com/spf13/cobra"
)

type RunOptions struct {
	Window         time.Duration
	Since          string
	DryRun         bool
	CheckpointFile string
}

func NewRunCmd() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the ETL pipeline once",
		RunE: func(c *cobra.Command, args []string) error {
			return runPipeline(opts)
		},
	}

	cmd.Flags().DurationVarP(&opts.Window, "window", "w", time.Hour, "Trailing extraction window")
	cmd.Flags().StringVarP(&opts.Since, "since", "s", "", "Extract from this RFC 3339 time instead of the trailing window")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Extract and transform only, skip delivery")
	cmd.Flags().StringVar(&opts.CheckpointFile, "checkpoint", "", "Checkpoint file recording the last successful run")

	return cmd
}
