package format

import (
	"net/url"
	"strings"

	"tickerlookup/internal/provider"
)

// Row is one label/value line of a quote detail view.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Details lays out q for display, in the order the detail view shows it.
func Details(q provider.Quote) []Row {
	rankText := q.ZacksRankText
	if IsMissing(rankText) {
		rankText = RankLabel(q.ZacksRank)
	}
	rank := Missing
	if !IsMissing(q.ZacksRank) {
		rank = q.ZacksRank + " - " + rankText
	}

	return []Row{
		{"Last", Currency(q.Last)},
		{"Change", Currency(q.NetChange) + " (" + Percent(q.PercentNetChange) + ")"},
		{"Previous Close", Currency(q.PreviousClose)},
		{"Zacks Rank", rank},
		{"Open", Currency(q.Open)},
		{"Bid", Currency(q.Bid)},
		{"Ask", Currency(q.Ask)},
		{"Day Range", rangeOf(q.DayLow, q.DayHigh)},
		{"52 Week Range", rangeOf(q.YearLow, q.YearHigh)},
		{"Volume", Number(q.Volume)},
		{"Market Cap", Number(q.MarketCap)},
		{"P/E", Number(q.PERatio)},
		{"EPS", Number(q.EPS)},
		{"Dividend Yield", dividend(q.DividendYield)},
		{"Updated", Number(q.Updated)},
	}
}

func rangeOf(low, high string) string {
	if IsMissing(low) && IsMissing(high) {
		return Missing
	}
	return Currency(low) + " - " + Currency(high)
}

func dividend(v string) string {
	if IsMissing(v) {
		return Missing
	}
	return strings.TrimSuffix(v, "%") + "%"
}

// QuoteURL is the public Zacks page for ticker.
func QuoteURL(ticker string) string {
	return "https://www.zacks.com/stock/quote/" + url.PathEscape(strings.ToUpper(ticker))
}

// IconURL is the logo image for ticker.
func IconURL(ticker string) string {
	return "https://assets.parqet.com/logos/symbol/" + url.PathEscape(strings.ToUpper(ticker))
}
