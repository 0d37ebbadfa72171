package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo catalog products, flash sale campaigns and line
// items for local runs.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	// catalog products with prices in minor units
	products := []struct {
		id    int64
		name  string
		price int64
	}{
		{1, "Organic Rice 5kg", 120000},
		{2, "Dragon Fruit Box", 85000},
		{3, "Robusta Coffee 1kg", 150000},
		{4, "Cashew Nuts 500g", 95000},
		{5, "Black Pepper 250g", 60000},
	}
	for _, p := range products {
		_, err := db.Exec(ctx, `INSERT INTO products (id, name, price, created_at, updated_at)
VALUES ($1,$2,$3,now(),now()) ON CONFLICT DO NOTHING`, p.id, p.name, p.price)
		if err != nil {
			return err
		}
	}

	// one running and one upcoming campaign
	campaigns := []struct {
		id     int64
		name   string
		start  time.Time
		end    time.Time
		pct    int
		cap    int64
		status string
	}{
		{1, "Harvest Week Sale", time.Now().AddDate(0, 0, -1), time.Now().AddDate(0, 0, 6), 20, 50000, "ACTIVE"},
		{2, "Tet Holiday Sale", time.Now().AddDate(0, 1, 0), time.Now().AddDate(0, 1, 7), 30, 100000, "UPCOMING"},
	}
	for _, c := range campaigns {
		desc := fmt.Sprintf("Seeded %s demo campaign", c.name)
		_, err := db.Exec(ctx, `INSERT INTO campaigns
    (id, name, description, start_time, end_time, discount_percentage, max_discount_amount, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now(),now()) ON CONFLICT DO NOTHING`,
			c.id, c.name, desc, c.start, c.end, c.pct, c.cap, c.status)
		if err != nil {
			return err
		}
	}

	// attach the first three products to the running campaign at the
	// campaign default percentage
	for _, p := range products[:3] {
		discount := (p.price*80 + 50) / 100
		_, err := db.Exec(ctx, `INSERT INTO campaign_items
    (campaign_id, product_id, original_price, discount_price, discount_percentage, stock_quantity, sold_quantity, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,0,now(),now()) ON CONFLICT DO NOTHING`,
			1, p.id, p.price, discount, 20, 50)
		if err != nil {
			return err
		}
	}

	// a few recorded sales against the first item
	for i := 0; i < 3; i++ {
		_, err := db.Exec(ctx, `INSERT INTO sales (token, campaign_id, product_id, quantity, created_at)
VALUES ($1,$2,$3,$4,now()) ON CONFLICT DO NOTHING`, uuid.NewString(), 1, products[0].id, 2)
		if err != nil {
			return err
		}
		_, err = db.Exec(ctx, `UPDATE campaign_items SET sold_quantity = sold_quantity + $3
WHERE campaign_id = $1 AND product_id = $2 AND sold_quantity + $3 <= stock_quantity`,
			1, products[0].id, 2)
		if err != nil {
			return err
		}
	}
	return nil
}
