package utils

import (
	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"MXN": "$",
	"COP": "$",
	"ARS": "$",
	"GBP": "£",
}

// FormatAmount renders an amount with its currency symbol at two decimal
// places. A plain function rather than a computed field on the record:
// formatting depends on the viewer's preferences, not on the stored data.
// Example: FormatAmount(d("1234.5"), "EUR") returns "€1234.50".
func FormatAmount(amount decimal.Decimal, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		return currency + " " + amount.StringFixed(2)
	}
	return symbol + amount.StringFixed(2)
}
