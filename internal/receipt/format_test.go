package receipt

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"zero", "0", "RD$ 0.00"},
		{"small", "5", "RD$ 5.00"},
		{"two decimals kept", "500.75", "RD$ 500.75"},
		{"rounds to two decimals", "0.185175", "RD$ 0.19"},
		{"thousands grouped", "1500", "RD$ 1,500.00"},
		{"millions grouped", "1234567.5", "RD$ 1,234,567.50"},
		{"exact group boundary", "100000", "RD$ 100,000.00"},
		{"negative", "-1500.25", "RD$ -1,500.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, Currency(d))
		})
	}
}

func TestLongDate(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), "1 de septiembre de 2026"},
		{time.Date(2025, time.January, 31, 23, 59, 0, 0, time.UTC), "31 de enero de 2025"},
		{time.Date(2024, time.December, 25, 12, 0, 0, 0, time.UTC), "25 de diciembre de 2024"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LongDate(tt.date))
	}
}

func TestMaskedParty(t *testing.T) {
	assert.Equal(t, "Nómina - 4821", MaskedParty("Nómina", "4821"))
	assert.Equal(t, "—", MaskedParty("", ""))
}
