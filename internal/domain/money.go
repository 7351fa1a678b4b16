package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// StoreCurrency is the single currency every price in the catalog is quoted in.
var StoreCurrency = currency.GBP

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func GBP(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: StoreCurrency}
}
