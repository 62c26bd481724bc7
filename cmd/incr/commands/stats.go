package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [bundle...]",
		Short: "Show the last build report of every bundle or of the named ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			reports, err := c.app.Stats(configPath, args...)
			if err != nil {
				return err
			}

			if len(reports) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no builds recorded")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "BUNDLE\tSTATUS\tROWS\tHITS\tMISSES\tVALIDATIONS\tBUILT")
			for _, r := range reports {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
					r.Bundle, r.Status, r.Rows, r.Hits, r.Misses, r.Validations,
					r.Timestamp.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
}
