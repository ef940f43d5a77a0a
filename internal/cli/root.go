package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "purchase-etl",
		Short: "purchase-etl - batch delivery of recent purchases to the ingest API",
		Long: `purchase-etl extracts purchases from Postgres for a trailing time window,
groups them by category and delivers each category batch to the ingest API
with bounded retry.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(NewRunCmd())

	return rootCmd
}
