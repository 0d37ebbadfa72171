package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"flashsale/internal/core/port"
)

// ProductCatalog reads the products table. It stands in for the
// external catalog collaborator; line items snapshot the price they see
// here and never re-read it.
type ProductCatalog struct {
	pool *pgxpool.Pool
}

// NewProductCatalog returns a catalog over the given pool.
func NewProductCatalog(pool *pgxpool.Pool) *ProductCatalog {
	return &ProductCatalog{pool: pool}
}

func (c *ProductCatalog) GetProduct(ctx context.Context, id int64) (*port.Product, error) {
	var p port.Product
	err := c.pool.QueryRow(ctx, `SELECT id, name, price FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Price)
	if err != nil {
		return nil, storeErr(err)
	}
	return &p, nil
}
