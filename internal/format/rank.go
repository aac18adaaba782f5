package format

import "strings"

// Color is a hex RGB colour.
type Color string

const (
	ColorStrongBuy  Color = "#1B9E4B"
	ColorBuy        Color = "#7AC143"
	ColorHold       Color = "#F2C200"
	ColorSell       Color = "#F07F1D"
	ColorStrongSell Color = "#D62D20"
	ColorNeutral    Color = "#8E8E93"
)

var rankColors = map[string]Color{
	"1": ColorStrongBuy,
	"2": ColorBuy,
	"3": ColorHold,
	"4": ColorSell,
	"5": ColorStrongSell,
}

var rankLabels = map[string]string{
	"1": "Strong Buy",
	"2": "Buy",
	"3": "Hold",
	"4": "Sell",
	"5": "Strong Sell",
}

// RankColor maps a rank "1".."5" to its colour; anything else is neutral.
func RankColor(rank string) Color {
	if c, ok := rankColors[strings.TrimSpace(rank)]; ok {
		return c
	}
	return ColorNeutral
}

// RankLabel is the standard label for a rank, used when the feed omits
// zacks_rank_text.
func RankLabel(rank string) string {
	if l, ok := rankLabels[strings.TrimSpace(rank)]; ok {
		return l
	}
	return Missing
}
