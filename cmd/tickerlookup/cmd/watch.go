package cmd

import (
	"bufio"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func (c *cli) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Search every line typed on stdin as you go",
		Long: `watch reads queries line by line and searches each one without waiting
for the previous search. When searches overlap only the newest query's
results are printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ss := c.app.Service.NewSession()
			out := cmd.OutOrStdout()

			var mu sync.Mutex
			var g errgroup.Group
			sc := bufio.NewScanner(cmd.InOrStdin())
			for sc.Scan() {
				query := strings.TrimSpace(sc.Text())
				if query == "" {
					continue
				}
				pending := ss.SearchAsync(ctx, query)
				g.Go(func() error {
					res := <-pending
					if !res.Current {
						log.Debug().Str("query", res.Query).Msg("discarding superseded search")
						return nil
					}
					mu.Lock()
					defer mu.Unlock()
					if c.jsonOut {
						return printJSON(out, res.Results)
					}
					fmt.Fprintf(out, "> %s\n", res.Query)
					return printResults(out, res.Results)
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			return sc.Err()
		},
	}
}
