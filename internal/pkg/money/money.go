// internal/pkg/money/money.go
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// Round2 rounds an amount to currency precision (2 decimal places,
// half away from zero). Internal arithmetic stays at full precision;
// rounding happens once, at the boundary.
func Round2(amount float64) float64 {
	rounded, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return rounded
}

// FormatPrice renders an amount as a US dollar string, e.g. "$1,234.56".
func FormatPrice(amount float64) string {
	return usPrinter.Sprintf("$%.2f", Round2(amount))
}
