// Package receipt renders the display strings of a finalized transaction:
// currency amounts, the long-form completion date and masked party labels.
// All functions are pure; reference numbers and timestamps are generated at
// completion time by the workflow and treated here as immutable inputs.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyPrefix is the Dominican peso display prefix.
const CurrencyPrefix = "RD$"

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Currency formats an amount with two fixed decimals, comma-grouped thousands
// and the currency prefix: 1234567.5 -> "RD$ 1,234,567.50".
func Currency(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, decPart, _ := strings.Cut(fixed, ".")
	grouped := groupThousands(intPart)

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s %s%s.%s", CurrencyPrefix, sign, grouped, decPart)
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// LongDate renders a completion timestamp in long Spanish form, e.g.
// "1 de septiembre de 2026".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// MaskedParty is the display label for a transfer party: the nickname or name
// followed by the last four digits of the account number.
func MaskedParty(displayName, lastFour string) string {
	if displayName == "" && lastFour == "" {
		return "—"
	}
	return fmt.Sprintf("%s - %s", displayName, lastFour)
}
