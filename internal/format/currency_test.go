package format_test

import (
	"testing"

	"github.com/nikolayk812/shopcart/internal/format"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

func TestGBP(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{name: "two decimals", amount: "25.5", want: "£25.50"},
		{name: "zero", amount: "0", want: "£0.00"},
		{name: "thousands separator", amount: "1234.5", want: "£1,234.50"},
		{name: "millions", amount: "1234567.891", want: "£1,234,567.89"},
		{name: "rounds half away from zero", amount: "0.125", want: "£0.13"},
		{name: "negative", amount: "-3", want: "-£3.00"},
		{name: "negative rounds to zero", amount: "-0.001", want: "£0.00"},
		{name: "three digits", amount: "999.999", want: "£1,000.00"},
		{name: "beyond float64 precision", amount: "90071992547409.93", want: "£90,071,992,547,409.93"},
		{name: "beyond int64", amount: "12345678901234567890.89", want: "£12,345,678,901,234,567,890.89"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := format.GBP(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatter_Symbol(t *testing.T) {
	f := format.New(language.BritishEnglish, currency.GBP)

	assert.Equal(t, "£", f.Symbol())
}
