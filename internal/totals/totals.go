// Package totals derives cart totals from a cart snapshot.
package totals

import (
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/shopspring/decimal"
)

// Sum returns the sum of unit price times quantity over all lines, zero for no lines.
func Sum(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal().Amount)
	}
	return total
}

func Money(lines []domain.CartLine) domain.Money {
	return domain.GBP(Sum(lines))
}

// Units returns the number of items across all lines.
func Units(lines []domain.CartLine) int {
	units := 0
	for _, line := range lines {
		units += line.Quantity
	}
	return units
}
