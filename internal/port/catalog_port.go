package port

import (
	"context"

	"github.com/nikolayk812/shopcart/internal/domain"
)

type CatalogClient interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
}
