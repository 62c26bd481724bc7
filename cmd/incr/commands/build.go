package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build [bundles...]",
		Short: "Build bundles once, reusing cached modules",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := c.app.Build(cmd.Context(), buildOptions(cmd, args))
			for _, res := range results {
				if res.Err != nil {
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows -> %s (%s)\n",
					res.Bundle, res.Rows, res.Output, res.Status)
			}
			return err
		},
	}
}
