package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts free-typed amount text into a decimal. Both "12,50"
// and "12.50" are accepted; Brazilian keyboards produce the former.
func Parse(raw string) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, false
	}
	trimmed = strings.TrimPrefix(trimmed, "R$")
	trimmed = strings.TrimSpace(trimmed)

	// With both separators present the comma is the decimal mark and
	// the dots are thousands grouping.
	if strings.Contains(trimmed, ",") {
		trimmed = strings.ReplaceAll(trimmed, ".", "")
		trimmed = strings.Replace(trimmed, ",", ".", 1)
	}

	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, false
	}
	return value, true
}

// FromFloat wraps a JSON number coming off the wire.
func FromFloat(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

// FormatBRL renders a decimal as Brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(value decimal.Decimal) string {
	negative := value.IsNegative()
	fixed := value.Abs().StringFixed(2)

	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-2:]

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	out := "R$ " + grouped.String() + "," + fracPart
	if negative {
		out = "-" + out
	}
	return out
}
