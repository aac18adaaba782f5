// Package cmd holds the tickerlookup CLI commands.
package cmd

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tickerlookup/internal/app"
	"tickerlookup/internal/config"
)

type cli struct {
	cfgFile string
	jsonOut bool
	verbose bool

	app *app.App
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tickerlookup",
		Short: "Search tickers, show quotes and Zacks ranks, keep a recents list",
		Long: `tickerlookup searches stock tickers, shows quote and Zacks Rank details,
and remembers the last tickers you looked at.

Commands:
    search <query>           - search tickers by name or symbol
    quote <ticker>           - show a quote and record it in recents
    recents                  - list recent tickers with fresh quotes
    recents remove <symbol>  - drop one ticker from recents
    recents clear            - empty recents
    watch                    - search each line read from stdin, newest wins
`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is config.json if present)")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "print JSON instead of tables")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		c.searchCmd(),
		c.quoteCmd(),
		c.recentsCmd(),
		c.watchCmd(),
	)
	return root
}

// Execute runs the root command against the process arguments and stdio.
func Execute() error {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, in io.Reader, out, errOut io.Writer) error {
	c := &cli{}
	defer c.close()

	root := c.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.Execute()
}

func (c *cli) close() {
	if c.app == nil {
		return
	}
	if err := c.app.Close(); err != nil {
		log.Warn().Err(err).Msg("closing store")
	}
}

func (c *cli) setup(*cobra.Command, []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := config.Load(c.cfgFile)
	if err != nil {
		return err
	}
	if err := app.InitLogger(cfg, "tickerlookup", c.verbose); err != nil {
		return err
	}
	c.app, err = app.New(cfg)
	if err != nil {
		return err
	}
	log.Debug().Str("store", cfg.Store.Backend).Msg("ready")
	return nil
}
