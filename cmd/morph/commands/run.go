package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [artifacts...]",
		Short: "Resolve artifacts (all when none are given)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := runOptions(cmd)
			opts.Parallelism, _ = cmd.Flags().GetInt("parallel")
			opts.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
			return c.app.Run(cmd.Context(), args, opts)
		},
	}
	cmd.Flags().IntP("parallel", "j", 0, "Number of artifacts resolved concurrently (default: settings)")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address while running")
	return cmd
}
