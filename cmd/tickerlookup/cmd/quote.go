package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tickerlookup/internal/format"
	"tickerlookup/internal/provider"
)

type quoteOutput struct {
	Quote   *provider.Quote `json:"quote"`
	Details []format.Row    `json:"details"`
	URL     string          `json:"url"`
	Icon    string          `json:"icon"`
}

func (c *cli) quoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote <ticker>",
		Short: "Show a quote with its Zacks Rank and add it to recents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := c.app.Service.Lookup(cmd.Context(), args[0])
			if provider.IsNotFound(err) {
				return fmt.Errorf("ticker %q not found", args[0])
			}
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), quoteOutput{
					Quote:   q,
					Details: format.Details(*q),
					URL:     format.QuoteURL(q.Ticker),
					Icon:    format.IconURL(q.Ticker),
				})
			}
			return printQuote(cmd.OutOrStdout(), *q)
		},
	}
}
