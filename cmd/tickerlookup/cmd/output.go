package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"tickerlookup/internal/format"
	"tickerlookup/internal/lookup"
	"tickerlookup/internal/provider"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printResults(w io.Writer, results []provider.TickerSearchResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No results")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "SYMBOL\tNAME")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\n", r.Symbol, r.Name)
	}
	return tw.Flush()
}

func printQuote(w io.Writer, q provider.Quote) error {
	title := q.Ticker
	if !format.IsMissing(q.Name) {
		title += "  " + q.Name
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)))

	tw := newTable(w)
	for _, row := range format.Details(q) {
		fmt.Fprintf(tw, "%s\t%s\n", row.Label, row.Value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Zacks: %s\n", format.QuoteURL(q.Ticker))
	_, err := fmt.Fprintf(w, "Logo:  %s\n", format.IconURL(q.Ticker))
	return err
}

func printRecents(w io.Writer, views []lookup.RecentView) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "No recent tickers")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "SYMBOL\tNAME\tLAST\tCHANGE\tRANK\tVIEWED")
	for _, v := range views {
		last, change, rank := format.Missing, format.Missing, format.Missing
		if v.Quote != nil {
			last = format.Currency(v.Quote.Last)
			change = format.Percent(v.Quote.PercentNetChange)
			rank = format.RankLabel(v.Quote.ZacksRank)
		}
		viewed := time.UnixMilli(v.Timestamp).Local().Format("2006-01-02 15:04")
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", v.Symbol, v.Name, last, change, rank, viewed)
	}
	return tw.Flush()
}
