package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// CartLine is a product paired with the quantity the user intends to buy.
// Quantity is always >= 1: a product that is not wanted is absent from the Cart.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

func (l CartLine) Subtotal() Money {
	return GBP(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
}

// Cart maps a product id to its line. Every key equals the line's product id.
type Cart map[ProductID]CartLine

func (c Cart) Has(id ProductID) bool {
	_, ok := c[id]
	return ok
}

// Lines returns the cart lines ordered by product id.
func (c Cart) Lines() []CartLine {
	lines := make([]CartLine, 0, len(c))
	for _, line := range c {
		lines = append(lines, line)
	}

	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ID < lines[j].ID
	})

	return lines
}

func (c Cart) Validate() error {
	for id, line := range c {
		if line.ID != id {
			return fmt.Errorf("cart key[%d] does not match product id[%d]", id, line.ID)
		}
		if line.Quantity < 1 {
			return fmt.Errorf("product[%d] quantity[%d] is not positive", id, line.Quantity)
		}
	}
	return nil
}

// Normalize drops lines that break the cart invariants, which can only come
// from storage written by something other than this program.
func (c Cart) Normalize() (Cart, int) {
	normalized := make(Cart, len(c))
	dropped := 0
	for id, line := range c {
		if line.ID != id || line.Quantity < 1 {
			dropped++
			continue
		}
		normalized[id] = line
	}
	return normalized, dropped
}
