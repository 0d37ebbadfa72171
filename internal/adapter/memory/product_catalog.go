package memory

import (
	"context"
	"sync"

	"flashsale/internal/core/domain"
	"flashsale/internal/core/port"
)

// ProductCatalog is an in-memory port.ProductCatalog for tests and
// local runs.
type ProductCatalog struct {
	mu       sync.RWMutex
	products map[int64]port.Product
}

// NewProductCatalog returns a catalog preloaded with the given products.
func NewProductCatalog(products ...port.Product) *ProductCatalog {
	c := &ProductCatalog{products: make(map[int64]port.Product, len(products))}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

// Put adds or replaces a product.
func (c *ProductCatalog) Put(p port.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
}

func (c *ProductCatalog) GetProduct(_ context.Context, id int64) (*port.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}
