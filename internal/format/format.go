// Package format renders amounts, percentages and dates for display.
package format

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/templui/goalboard/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Display formatting is fixed to US English; amounts are shown in dollars.
var displayTag = language.AmericanEnglish

// Currency formats d as dollars with two decimals, e.g. "$1,234.50".
func Currency(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	sign := ""
	if f < 0 {
		sign = "-"
		f = math.Abs(f)
	}
	p := message.NewPrinter(displayTag)
	return sign + "$" + p.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Grouped formats f with thousands separators and at most maxFraction decimals.
func Grouped(f float64, maxFraction int) string {
	p := message.NewPrinter(displayTag)
	return p.Sprint(number.Decimal(f, number.MinFractionDigits(0), number.MaxFractionDigits(maxFraction)))
}

// Percent formats a 0-100 value with one decimal, e.g. "42.5%".
func Percent(p float64) string {
	return message.NewPrinter(displayTag).Sprintf("%.1f%%", p)
}

// Date formats d as "Jan 2, 2006".
func Date(d model.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Midnight(time.UTC).Format("Jan 2, 2006")
}
