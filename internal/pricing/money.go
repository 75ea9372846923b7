package pricing

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// ParseAmount converts user-typed price input into a decimal amount. Every
// non-digit character is dropped and the remaining digit string is read as an
// integer number of cents, so intermediate typing states of a masked input
// ("12" on the way to "12,50") stay consistent. Empty or all-non-digit input
// parses as zero.
func ParseAmount(raw string) float64 {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	cents, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		// more digits than an int64 of cents can hold
		return 0
	}
	return float64(cents) / 100
}

// FormatAmount renders a value as a fixed two-decimal, thousands-grouped
// pt-BR string, e.g. 1234.5 -> "1.234,50". Non-finite input formats as "0,00".
func FormatAmount(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	return ptBR.Sprint(number.Decimal(value, number.Scale(2)))
}

// ClampBelow limits a typed promotional value to one cent under the regular
// price. Used only while normalizing live input; the save path rejects instead
// of clamping.
func ClampBelow(value, ceiling float64) float64 {
	if value < ceiling {
		return value
	}
	if ceiling > 0 {
		return ceiling - 0.01
	}
	return 0
}
