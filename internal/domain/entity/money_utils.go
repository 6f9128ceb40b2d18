package entity

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/command-line-bank/internal/domain/error"
	"github.com/shopspring/decimal"
)

// MaxBalance is the largest balance an account may hold (2^96 - 1).
var MaxBalance = decimal.RequireFromString("79228162514264337593543950335")

// ParseAmount parses user-entered amount text as a decimal.
// Accepted form: optional surrounding whitespace, an optional leading sign,
// digits with at most one decimal point. Exponents, thousands separators,
// currency symbols and values beyond MaxBalance are rejected with ErrNotANumber.
// The sign is not checked here; callers decide whether non-positive values are allowed.
func ParseAmount(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return decimal.Zero, fmt.Errorf("%w: empty value", errs.ErrNotANumber)
	}

	if !isPlainDecimal(text) {
		return decimal.Zero, fmt.Errorf("%w: %q", errs.ErrNotANumber, text)
	}

	value, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", errs.ErrNotANumber, text)
	}

	if value.Abs().GreaterThan(MaxBalance) {
		return decimal.Zero, fmt.Errorf("%w: %q is out of range", errs.ErrNotANumber, text)
	}

	return value, nil
}

// isPlainDecimal reports whether s is [+-]digits[.digits] with at least one digit
func isPlainDecimal(s string) bool {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}

	digits := 0
	seenPoint := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !seenPoint:
			seenPoint = true
		default:
			return false
		}
	}
	return digits > 0
}

// FormatAmount renders an amount in base 10 keeping the scale it carries,
// so "100.00" stays "100.00". Nothing is rounded.
func FormatAmount(amount decimal.Decimal) string {
	if exp := amount.Exponent(); exp < 0 {
		return amount.StringFixed(-exp)
	}
	return amount.String()
}
