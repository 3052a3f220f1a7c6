package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

const (
	// MaxFractionDigits is the display precision for amounts
	MaxFractionDigits = 2

	groupSeparator   = "."
	decimalSeparator = ","
	currencySymbol   = "$"
)

// LineSubtotal computes quantity * unit price
func LineSubtotal(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// FormatAmount renders an amount the way Colombian Spanish locales do:
// "." groups thousands, "," separates decimals, at most two fraction
// digits and no trailing zeros. 14400 -> "14.400", 2736.5 -> "2.736,5".
func FormatAmount(d decimal.Decimal) string {
	d = d.Round(MaxFractionDigits)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	// StringFixed keeps the exponent stable; trailing zeros are trimmed below.
	text := d.StringFixed(MaxFractionDigits)
	intPart, fracPart, _ := strings.Cut(text, ".")
	fracPart = strings.TrimRight(fracPart, "0")

	out := sign + groupThousands(intPart)
	if fracPart != "" {
		out += decimalSeparator + fracPart
	}
	if out == "-0" {
		return "0"
	}
	return out
}

// FormatCurrency is FormatAmount with the currency symbol prefixed
func FormatCurrency(d decimal.Decimal) string {
	return currencySymbol + FormatAmount(d)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(groupSeparator)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
