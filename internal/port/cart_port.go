package port

import (
	"context"

	"github.com/nikolayk812/shopcart/internal/domain"
)

type CartStore interface {
	Add(ctx context.Context, product domain.Product) error
	Increase(ctx context.Context, productID domain.ProductID) error
	Decrease(ctx context.Context, productID domain.ProductID) error
	SetQuantity(ctx context.Context, productID domain.ProductID, quantity int) error
	Remove(ctx context.Context, productID domain.ProductID) error
	Clear(ctx context.Context) error

	IsInCart(ctx context.Context, productID domain.ProductID) (bool, error)
	Snapshot(ctx context.Context) ([]domain.CartLine, error)
	Count(ctx context.Context) (int, error)
	Total(ctx context.Context) (domain.Money, error)
}
