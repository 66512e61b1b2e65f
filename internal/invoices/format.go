package invoices

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var gbPrinter = message.NewPrinter(language.BritishEnglish)

// FormatPence renders an amount in pence as a GBP display string, e.g.
// 125000 -> "£1,250.00".
func FormatPence(pence int64) string {
	pounds := float64(pence) / 100
	return gbPrinter.Sprintf("£%v", number.Decimal(pounds,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}
