// Package catalog fetches the product list from the remote catalog endpoint.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
	"go.uber.org/zap"
)

const DefaultEndpoint = "https://dummyjson.com/products"

var ErrFetch = errors.New("catalog fetch failed")

// FetchError is returned for any failed catalog request: transport failure,
// non-200 status or an undecodable body. StatusCode is 0 when no response was received.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", ErrFetch, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", ErrFetch, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ port.CatalogClient = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint is empty")
	}

	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("catalog")

	return c, nil
}

type productsResponse struct {
	Products []domain.Product `json:"products"`
}

// FetchProducts issues a single GET to the catalog endpoint. There is no retry.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("http.NewRequestWithContext: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("catalog request failed", zap.String("endpoint", c.endpoint), zap.Error(err))
		return nil, &FetchError{Err: fmt.Errorf("httpClient.Do: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("catalog responded with error status",
			zap.String("endpoint", c.endpoint), zap.Int("status", resp.StatusCode))
		return nil, &FetchError{StatusCode: resp.StatusCode, Err: errors.New("unexpected status")}
	}

	var body productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &FetchError{StatusCode: resp.StatusCode, Err: fmt.Errorf("json.Decode: %w", err)}
	}

	if body.Products == nil {
		return nil, &FetchError{StatusCode: resp.StatusCode, Err: errors.New("response has no products array")}
	}

	c.logger.Debug("catalog fetched", zap.Int("products", len(body.Products)))

	return body.Products, nil
}
