package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// UnavailableLabel is shown instead of a price when the product has none
const UnavailableLabel = "—"

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders amount the way the storefront shows prices everywhere,
// e.g. 30000 -> "Rp 30.000", 1250.5 -> "Rp 1.250,5".
func FormatRupiah(amount float64) string {
	return "Rp " + idPrinter.Sprint(number.Decimal(amount, number.MaxFractionDigits(3)))
}

// FormatBasePrice is FormatRupiah, except unavailable prices render as UnavailableLabel
func FormatBasePrice(basePrice float64) string {
	if PriceUnavailable(basePrice) {
		return UnavailableLabel
	}
	return FormatRupiah(basePrice)
}
