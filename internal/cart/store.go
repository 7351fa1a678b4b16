// Package cart keeps the shopping cart in the persisted key-value store.
//
// Every mutation is a single read-modify-write of the "cart" entry, so a cart
// line with zero quantity is never written: decreasing the last unit removes
// the line in the same update.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/kvstore"
	"github.com/nikolayk812/shopcart/internal/port"
	"github.com/nikolayk812/shopcart/internal/totals"
	"go.uber.org/zap"
)

const StorageKey = "cart"

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidProduct  = errors.New("product is not valid")
)

type Store struct {
	entry  *kvstore.Entry[domain.Cart]
	logger *zap.Logger
}

var _ port.CartStore = (*Store)(nil)

func NewStore(kv port.KVStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		entry:  kvstore.NewEntry(kv, StorageKey, func() domain.Cart { return domain.Cart{} }),
		logger: logger.Named("cart"),
	}
}

// Add puts product in the cart with quantity 1, replacing any existing line.
func (s *Store) Add(ctx context.Context, product domain.Product) error {
	if product.Price.IsNegative() {
		return fmt.Errorf("%w: product[%d] price[%s] is negative", ErrInvalidProduct, product.ID, product.Price)
	}

	err := s.update(ctx, func(c domain.Cart) (domain.Cart, error) {
		c[product.ID] = domain.CartLine{Product: product, Quantity: 1}
		return c, nil
	})
	if err != nil {
		return fmt.Errorf("add product[%d]: %w", product.ID, err)
	}

	s.logger.Debug("product added", zap.Int64("product_id", int64(product.ID)))

	return nil
}

func (s *Store) Increase(ctx context.Context, productID domain.ProductID) error {
	err := s.update(ctx, func(c domain.Cart) (domain.Cart, error) {
		if line, ok := c[productID]; ok {
			line.Quantity++
			c[productID] = line
		}
		return c, nil
	})
	if err != nil {
		return fmt.Errorf("increase product[%d]: %w", productID, err)
	}

	return nil
}

// Decrease lowers the quantity by one and removes the line when it reaches zero.
func (s *Store) Decrease(ctx context.Context, productID domain.ProductID) error {
	err := s.update(ctx, func(c domain.Cart) (domain.Cart, error) {
		line, ok := c[productID]
		if !ok {
			return c, nil
		}

		line.Quantity--
		if line.Quantity <= 0 {
			delete(c, productID)
			return c, nil
		}

		c[productID] = line
		return c, nil
	})
	if err != nil {
		return fmt.Errorf("decrease product[%d]: %w", productID, err)
	}

	return nil
}

// SetQuantity replaces the quantity of a line already in the cart.
func (s *Store) SetQuantity(ctx context.Context, productID domain.ProductID, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("set quantity[%d] of product[%d]: %w", quantity, productID, ErrInvalidQuantity)
	}

	err := s.update(ctx, func(c domain.Cart) (domain.Cart, error) {
		if line, ok := c[productID]; ok {
			line.Quantity = quantity
			c[productID] = line
		}
		return c, nil
	})
	if err != nil {
		return fmt.Errorf("set quantity of product[%d]: %w", productID, err)
	}

	return nil
}

func (s *Store) Remove(ctx context.Context, productID domain.ProductID) error {
	err := s.update(ctx, func(c domain.Cart) (domain.Cart, error) {
		delete(c, productID)
		return c, nil
	})
	if err != nil {
		return fmt.Errorf("remove product[%d]: %w", productID, err)
	}

	s.logger.Debug("product removed", zap.Int64("product_id", int64(productID)))

	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	err := s.update(ctx, func(domain.Cart) (domain.Cart, error) {
		return domain.Cart{}, nil
	})
	if err != nil {
		return fmt.Errorf("clear: %w", err)
	}

	return nil
}

func (s *Store) IsInCart(ctx context.Context, productID domain.ProductID) (bool, error) {
	c, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	return c.Has(productID), nil
}

// Snapshot returns the current lines ordered by product id.
func (s *Store) Snapshot(ctx context.Context) ([]domain.CartLine, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return c.Lines(), nil
}

// Count returns the number of distinct products in the cart.
func (s *Store) Count(ctx context.Context) (int, error) {
	c, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	return len(c), nil
}

func (s *Store) Total(ctx context.Context) (domain.Money, error) {
	lines, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Money{}, err
	}

	return totals.Money(lines), nil
}

func (s *Store) load(ctx context.Context) (domain.Cart, error) {
	c, err := s.entry.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("entry.Get: %w", err)
	}

	return s.normalize(c), nil
}

func (s *Store) normalize(c domain.Cart) domain.Cart {
	normalized, dropped := c.Normalize()
	if dropped > 0 {
		s.logger.Warn("dropped invalid cart lines", zap.Int("count", dropped))
	}
	return normalized
}

func (s *Store) update(ctx context.Context, fn func(c domain.Cart) (domain.Cart, error)) error {
	return s.entry.Modify(ctx, func(prev domain.Cart) (domain.Cart, error) {
		next, err := fn(s.normalize(prev))
		if err != nil {
			return nil, err
		}

		if err := next.Validate(); err != nil {
			return nil, fmt.Errorf("cart.Validate: %w", err)
		}

		return next, nil
	})
}

// ParseQuantity turns free-text input into a positive quantity.
func ParseQuantity(input string) (int, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || quantity < 1 {
		return 0, fmt.Errorf("quantity[%s]: %w", input, ErrInvalidQuantity)
	}

	return quantity, nil
}
