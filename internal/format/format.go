// Package format renders vendor quote values for display.
//
// Every function is total: a missing value becomes "N/A" and anything that
// cannot be parsed is returned unchanged.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Missing is shown in place of an absent value.
const Missing = "N/A"

// IsMissing reports whether v is one of the vendor's "no value" markers.
func IsMissing(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "NA", "-":
		return true
	}
	return false
}

// Number passes already formatted vendor values through.
func Number(v string) string {
	if IsMissing(v) {
		return Missing
	}
	return v
}

// Currency renders v as dollars with two decimals, e.g. "3.5" -> "$3.50".
func Currency(v string) string {
	if IsMissing(v) {
		return Missing
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return v
	}
	return "$" + d.StringFixed(2)
}

// Percent renders v with an explicit sign for non-negative values,
// e.g. "0" -> "+0.00%", "-1.2" -> "-1.20%".
func Percent(v string) string {
	if IsMissing(v) {
		return Missing
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return v
	}
	if d.IsNegative() {
		return "-" + d.Abs().StringFixed(2) + "%"
	}
	return "+" + d.StringFixed(2) + "%"
}
