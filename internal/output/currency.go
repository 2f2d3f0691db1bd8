package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer  = message.NewPrinter(language.BritishEnglish)
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)
	half     = decimal.NewFromFloat(0.5)
)

// FormatCurrency formats whole pounds with thousands separators: £1,234,
// -£1,234, or +£1,234 when showSign is set and the amount is non-zero
func FormatCurrency(amount decimal.Decimal, showSign bool) string {
	pounds := amount.Abs().Add(half).Floor()
	formatted := printer.Sprintf("£%d", pounds.IntPart())

	if showSign && !amount.IsZero() {
		if amount.IsPositive() {
			return "+" + formatted
		}
		return "-" + formatted
	}
	if amount.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

// FormatCurrencyShort abbreviates to £1.2m, £45k or £950. The sign stays
// after the pound symbol.
func FormatCurrencyShort(amount decimal.Decimal) string {
	abs := amount.Abs()
	switch {
	case abs.GreaterThanOrEqual(million):
		return "£" + amount.Div(million).StringFixed(1) + "m"
	case abs.GreaterThanOrEqual(thousand):
		return "£" + amount.Div(thousand).StringFixed(0) + "k"
	default:
		return "£" + amount.String()
	}
}

// FormatPercentage formats a percentage to one decimal place
func FormatPercentage(pct decimal.Decimal) string {
	return pct.StringFixed(1) + "%"
}
