package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) recentsCmd() *cobra.Command {
	recentsCmd := &cobra.Command{
		Use:   "recents",
		Short: "List recently viewed tickers with fresh quotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views := c.app.Service.Recents(cmd.Context())
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), views)
			}
			return printRecents(cmd.OutOrStdout(), views)
		},
	}

	recentsCmd.AddCommand(
		&cobra.Command{
			Use:   "remove <symbol>",
			Short: "Remove a ticker from recents",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.app.Service.Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return err
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every ticker from recents",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.app.Service.Clear(cmd.Context()); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Cleared recents")
				return err
			},
		},
	)
	return recentsCmd
}
