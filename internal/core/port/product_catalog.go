package port

import "context"

// Product is the catalog's view of a sellable product. Price is in
// integer minor units.
type Product struct {
	ID    int64
	Name  string
	Price int64
}

// ProductCatalog resolves product data at the moment a line item is
// added, to snapshot its original price. The core never re-reads the
// live catalog price afterward.
type ProductCatalog interface {
	// GetProduct returns the product by id, or domain.ErrNotFound.
	GetProduct(ctx context.Context, id int64) (*Product, error)
}
