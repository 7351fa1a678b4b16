// Package catalogview drives the catalog fetch lifecycle for the product list view.
//
// A controller performs at most one fetch: Idle -> Loading -> Ready or Failed.
// Neither Ready nor Failed is ever left automatically.
package catalogview

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
	"go.uber.org/zap"
)

const FailureMessage = "An error occurred when fetching data. Please check the API and try again."

var (
	ErrNotReady       = errors.New("catalog is not ready")
	ErrUnknownProduct = errors.New("product is not in the catalog")
)

type Controller struct {
	client port.CatalogClient
	cart   port.CartStore
	logger *zap.Logger

	mu    sync.Mutex
	state domain.CatalogState
}

func NewController(client port.CatalogClient, cart port.CartStore, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Controller{
		client: client,
		cart:   cart,
		logger: logger.Named("catalogview"),
	}
}

// Mount starts the fetch when the controller is idle and blocks until it completes.
// On any other phase it returns the current state without fetching again.
func (c *Controller) Mount(ctx context.Context) domain.CatalogState {
	c.mu.Lock()
	if c.state.Phase != domain.CatalogIdle {
		state := c.state
		c.mu.Unlock()
		return state
	}
	c.state = domain.CatalogState{Phase: domain.CatalogLoading}
	c.mu.Unlock()

	products, err := c.client.FetchProducts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.logger.Warn("catalog fetch failed", zap.Error(err))
		c.state = domain.CatalogState{Phase: domain.CatalogFailed, Err: err}
		return c.state
	}

	c.logger.Info("catalog ready", zap.Int("products", len(products)))
	c.state = domain.CatalogState{Phase: domain.CatalogReady, Products: products}

	return c.state
}

func (c *Controller) State() domain.CatalogState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// IsInCart reports whether the product is already in the cart. It is always
// false until the catalog is ready.
func (c *Controller) IsInCart(ctx context.Context, productID domain.ProductID) (bool, error) {
	if c.State().Phase != domain.CatalogReady {
		return false, nil
	}

	inCart, err := c.cart.IsInCart(ctx, productID)
	if err != nil {
		return false, fmt.Errorf("cart.IsInCart: %w", err)
	}

	return inCart, nil
}

// InCart returns the listed products that are already in the cart, read from
// a single cart snapshot. It is empty until the catalog is ready.
func (c *Controller) InCart(ctx context.Context) (map[domain.ProductID]bool, error) {
	state := c.State()
	inCart := make(map[domain.ProductID]bool, len(state.Products))
	if state.Phase != domain.CatalogReady {
		return inCart, nil
	}

	lines, err := c.cart.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("cart.Snapshot: %w", err)
	}

	for _, line := range lines {
		if _, ok := state.Product(line.ID); ok {
			inCart[line.ID] = true
		}
	}

	return inCart, nil
}

// AddToCart adds a catalog product to the cart with quantity 1.
func (c *Controller) AddToCart(ctx context.Context, productID domain.ProductID) error {
	state := c.State()
	if state.Phase != domain.CatalogReady {
		return fmt.Errorf("add product[%d]: %w", productID, ErrNotReady)
	}

	product, ok := state.Product(productID)
	if !ok {
		return fmt.Errorf("add product[%d]: %w", productID, ErrUnknownProduct)
	}

	if err := c.cart.Add(ctx, product); err != nil {
		return fmt.Errorf("cart.Add: %w", err)
	}

	return nil
}
