package codec

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// roundTo rounds half away from zero to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// plainAmount renders v with exactly decimals fractional digits and no
// grouping. Canonical payloads only ever contain this form.
func plainAmount(v float64, decimals int) string {
	return strconv.FormatFloat(roundTo(v, decimals), 'f', decimals, 64)
}

// plainInt renders an integral amount in plain decimal digits.
func plainInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// displayAmount formats v for humans in the given BCP 47 locale, followed by
// the ISO currency code. The result goes into metadata only.
func displayAmount(locale string, v float64, decimals int, currency string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	return p.Sprint(number.Decimal(v, number.Scale(decimals))) + " " + currency
}
