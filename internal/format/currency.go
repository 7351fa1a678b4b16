// Package format renders monetary amounts for display.
//
// The storefront sells in a single currency, so the locale and currency are
// fixed to British English and pounds sterling.
package format

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type Formatter struct {
	symbol  string
	group   string
	decimal string
}

func New(tag language.Tag, unit currency.Unit) *Formatter {
	printer := message.NewPrinter(tag)
	group, dec := separators(printer)

	return &Formatter{
		symbol:  narrowSymbol(printer, unit),
		group:   group,
		decimal: dec,
	}
}

var gbp = New(language.BritishEnglish, currency.GBP)

// GBP formats amount as pounds sterling, e.g. £1,234.50.
func GBP(amount decimal.Decimal) string {
	return gbp.Format(amount)
}

// Format rounds amount half away from zero to two decimal places and prefixes the currency symbol.
// Digits come from the decimal itself, so amounts of any size print exactly.
func (f *Formatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(2)

	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")
	digits := groupThousands(whole, f.group) + f.decimal + frac

	if rounded.IsNegative() {
		return "-" + f.symbol + digits
	}
	return f.symbol + digits
}

func (f *Formatter) Symbol() string {
	return f.symbol
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}

	head := len(digits) % 3
	if head == 0 {
		head = 3
	}

	var sb strings.Builder
	sb.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		sb.WriteString(sep)
		sb.WriteString(digits[i : i+3])
	}

	return sb.String()
}

// separators reads the grouping and decimal marks x/text prints for the locale,
// "," and "." for en-GB.
func separators(printer *message.Printer) (group, dec string) {
	sample := printer.Sprint(number.Decimal(1234567.5, number.Scale(1)))

	var marks []string
	var mark strings.Builder
	for _, r := range sample {
		if unicode.IsDigit(r) {
			if mark.Len() > 0 {
				marks = append(marks, mark.String())
				mark.Reset()
			}
			continue
		}
		mark.WriteRune(r)
	}

	switch len(marks) {
	case 0:
		return ",", "."
	case 1:
		return "", marks[0]
	default:
		return marks[0], marks[len(marks)-1]
	}
}

// narrowSymbol extracts the symbol x/text places in front of an amount, "£" for GBP.
func narrowSymbol(printer *message.Printer, unit currency.Unit) string {
	sample := printer.Sprint(currency.NarrowSymbol(unit.Amount(1)))

	symbol := strings.TrimSpace(strings.TrimRightFunc(sample, func(r rune) bool {
		return unicode.IsDigit(r) || unicode.IsSpace(r) || r == '.' || r == ','
	}))
	if symbol == "" {
		return unit.String() + " "
	}

	return symbol
}
