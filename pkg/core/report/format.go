// Package report renders the per-period summary text and the numeric
// formatting shared with the chat responder.
package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Number renders a value with thousands separators and exactly two
// decimals, e.g. 1234567.891 -> "1,234,567.89".
func Number(v float64) string {
	return printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// NullableNumber is Number for optional values; missing values render as
// "N/D" (no disponible), matching the report vocabulary.
func NullableNumber(v *float64) string {
	if v == nil {
		return "N/D"
	}
	return Number(*v)
}

// Percent renders an optional percentage variation with two decimals and
// a trailing percent sign.
func Percent(v *float64) string {
	if v == nil {
		return "N/D %"
	}
	return Number(*v) + " %"
}
