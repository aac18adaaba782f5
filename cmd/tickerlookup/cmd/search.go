package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func (c *cli) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search tickers by company name or symbol",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Upstream failures are already logged; they print as no results.
			results, _ := c.app.Service.Search(cmd.Context(), strings.Join(args, " "))
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), results)
			}
			return printResults(cmd.OutOrStdout(), results)
		},
	}
}
