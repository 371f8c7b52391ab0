package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rafaelleal24/cart/internal/adapters/config"
	"github.com/rafaelleal24/cart/internal/core/domain"
	"github.com/rafaelleal24/cart/internal/core/port"
)

var (
	ErrNotFound    = errors.New("catalog: not found")
	ErrBadStatus   = errors.New("catalog: bad status")
	ErrUnavailable = errors.New("catalog: unavailable")
	ErrBadPayload  = errors.New("catalog: bad payload")
)

// Client talks to the catalog API: GET {base}/products/{id} and
// GET {base}/stock/{id}. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.CatalogConfig) port.CatalogPort {
	return newClient(cfg.BaseURL, &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

func newClient(baseURL string, httpClient *http.Client) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

func (c *Client) GetProduct(ctx context.Context, id domain.ProductID) (*domain.CatalogProduct, error) {
	var product domain.CatalogProduct
	if err := c.get(ctx, "products", id, &product); err != nil {
		return nil, err
	}
	if product.ID != id {
		return nil, fmt.Errorf("%w: asked for product %d, got %d", ErrBadPayload, id, product.ID)
	}
	return &product, nil
}

func (c *Client) GetStock(ctx context.Context, id domain.ProductID) (*domain.Stock, error) {
	var stock domain.Stock
	if err := c.get(ctx, "stock", id, &stock); err != nil {
		return nil, err
	}
	return &stock, nil
}

func (c *Client) get(ctx context.Context, resource string, id domain.ProductID, dst any) error {
	endpoint := fmt.Sprintf("%s/%s/%d", c.baseURL, resource, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s after %s: %v", ErrUnavailable, endpoint, time.Since(start).Round(time.Millisecond), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s %d", ErrNotFound, resource, id)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}
