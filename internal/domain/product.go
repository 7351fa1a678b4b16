package domain

import (
	"github.com/shopspring/decimal"
)

type ProductID int64

type Product struct {
	ID        ProductID       `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Thumbnail string          `json:"thumbnail"`
	Image     string          `json:"image"`
}
