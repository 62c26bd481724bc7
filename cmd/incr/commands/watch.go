package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [bundles...]",
		Short: "Build bundles and rebuild them when files change",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), buildOptions(cmd, args))
		},
	}
}
