package transfer

import (
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/bancoademi/transfers/internal/domain/errors"
)

// SanitizeAmountInput filters raw amount input down to digits and a single
// decimal point. Thousands separators, signs and any other characters are
// dropped, as is any decimal point after the first. The sanitized
// string is the source of truth; formatted presentation strings must pass
// through here before being parsed.
func SanitizeAmountInput(raw string) string {
	var b strings.Builder
	seenDot := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseAmount sanitizes and parses an amount input string. An empty input
// parses to zero. A negative amount cannot be produced because the sanitizer
// strips signs.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := SanitizeAmountInput(raw)
	if s == "" || s == "." {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domainErrors.NewDomainError("invalid_amount", "cannot parse amount "+raw, domainErrors.ErrInvalidAmount)
	}
	return d, nil
}
