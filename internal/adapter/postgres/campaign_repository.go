package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"flashsale/internal/core/domain"
	"flashsale/internal/core/port"
)

const campaignColumns = `id, name, description, start_time, end_time, discount_percentage, max_discount_amount, status, created_at, updated_at`

const itemColumns = `id, campaign_id, product_id, original_price, discount_price, discount_percentage, stock_quantity, sold_quantity, created_at, updated_at`

// CampaignRepository implements port.CampaignRepository using pgxpool
// for PostgreSQL. Sold-quantity accounting runs as conditional updates
// inside transactions so concurrent sales cannot oversell.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// storeErr translates low-level pgx failures into the domain error
// taxonomy. Anything that is not a recognised constraint or no-rows
// condition is reported as the store being unavailable.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	// already mapped
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDuplicateProduct) ||
		errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return domain.ErrDuplicateProduct
		case "23503": // foreign_key_violation
			return domain.ErrNotFound
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.StartTime,
		&c.EndTime,
		&c.DiscountPercentage,
		&c.MaxDiscountAmount,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, storeErr(err)
	}
	return &c, nil
}

func (r *CampaignRepository) CreateCampaign(ctx context.Context, c domain.Campaign) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO campaigns
    (name, description, start_time, end_time, discount_percentage, max_discount_amount, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,now(),now()) RETURNING id`,
		c.Name, c.Description, c.StartTime, c.EndTime, c.DiscountPercentage, c.MaxDiscountAmount, c.Status).Scan(&id)
	if err != nil {
		return 0, storeErr(err)
	}
	return id, nil
}

func (r *CampaignRepository) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	return scanCampaign(row)
}

func (r *CampaignRepository) UpdateCampaign(ctx context.Context, c domain.Campaign) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET
    name = $2, description = $3, start_time = $4, end_time = $5,
    discount_percentage = $6, max_discount_amount = $7, status = $8, updated_at = now()
WHERE id = $1`,
		c.ID, c.Name, c.Description, c.StartTime, c.EndTime, c.DiscountPercentage, c.MaxDiscountAmount, c.Status)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteCampaign removes the campaign row; line items and sales go with
// it through ON DELETE CASCADE.
func (r *CampaignRepository) DeleteCampaign(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CampaignRepository) ListCampaigns(ctx context.Context, f port.CampaignFilter) ([]domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns`
	args := []any{}
	if f.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *f.Status)
	}
	query += ` ORDER BY id`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		c, err := scanCampaign(row)
		if err != nil {
			return domain.Campaign{}, err
		}
		return *c, nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// UpdateStatus is a compare-and-set on the persisted status. A false
// return without error means the expected previous value was gone,
// i.e. a concurrent writer won.
func (r *CampaignRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.Status) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET status = $3, updated_at = now()
WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return false, storeErr(err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	// Distinguish a lost race from a missing campaign.
	var exists bool
	if err = r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM campaigns WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, storeErr(err)
	}
	if !exists {
		return false, domain.ErrNotFound
	}
	return false, nil
}

func (r *CampaignRepository) CancelCampaign(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET status = $2, updated_at = now() WHERE id = $1`,
		id, domain.StatusCancelled)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CampaignRepository) CreateItem(ctx context.Context, item domain.LineItem) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO campaign_items
    (campaign_id, product_id, original_price, discount_price, discount_percentage, stock_quantity, sold_quantity, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,now(),now()) RETURNING id`,
		item.CampaignID, item.ProductID, item.OriginalPrice, item.DiscountPrice,
		item.DiscountPercentage, item.StockQuantity, item.SoldQuantity).Scan(&id)
	if err != nil {
		return 0, storeErr(err)
	}
	return id, nil
}

func scanItem(row pgx.Row) (*domain.LineItem, error) {
	var it domain.LineItem
	err := row.Scan(
		&it.ID,
		&it.CampaignID,
		&it.ProductID,
		&it.OriginalPrice,
		&it.DiscountPrice,
		&it.DiscountPercentage,
		&it.StockQuantity,
		&it.SoldQuantity,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
	if err != nil {
		return nil, storeErr(err)
	}
	return &it, nil
}

func (r *CampaignRepository) GetItem(ctx context.Context, campaignID, productID int64) (*domain.LineItem, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM campaign_items
WHERE campaign_id = $1 AND product_id = $2`, campaignID, productID)
	return scanItem(row)
}

func (r *CampaignRepository) UpdateItemPricing(ctx context.Context, campaignID, productID, discountPrice int64, discountPercentage int) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaign_items
SET discount_price = $3, discount_percentage = $4, updated_at = now()
WHERE campaign_id = $1 AND product_id = $2`, campaignID, productID, discountPrice, discountPercentage)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CampaignRepository) DeleteItem(ctx context.Context, campaignID, productID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaign_items WHERE campaign_id = $1 AND product_id = $2`,
		campaignID, productID)
	if err != nil {
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CampaignRepository) ListItems(ctx context.Context, campaignID int64) ([]domain.LineItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+` FROM campaign_items
WHERE campaign_id = $1 ORDER BY id`, campaignID)
	if err != nil {
		return nil, storeErr(err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LineItem, error) {
		it, err := scanItem(row)
		if err != nil {
			return domain.LineItem{}, err
		}
		return *it, nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// RecordSale appends a ledger row and increments sold_quantity in one
// transaction. The increment carries its own stock check in the WHERE
// clause, a single conditional update rather than read-then-write, so
// two concurrent sales cannot jointly exceed stock. A token that was
// already recorded commits nothing and reports success.
func (r *CampaignRepository) RecordSale(ctx context.Context, sale domain.Sale) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return storeErr(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = storeErr(tx.Commit(ctx))
		}
	}()

	var saleID int64
	err = tx.QueryRow(ctx, `INSERT INTO sales (token, campaign_id, product_id, quantity, created_at)
VALUES ($1,$2,$3,$4,now()) ON CONFLICT (token) DO NOTHING RETURNING id`,
		sale.Token, sale.CampaignID, sale.ProductID, sale.Quantity).Scan(&saleID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Token already recorded: idempotent no-op.
		err = nil
		return nil
	}
	if err != nil {
		err = storeErr(err)
		return err
	}

	tag, execErr := tx.Exec(ctx, `UPDATE campaign_items
SET sold_quantity = sold_quantity + $3, updated_at = now()
WHERE campaign_id = $1 AND product_id = $2 AND sold_quantity + $3 <= stock_quantity`,
		sale.CampaignID, sale.ProductID, sale.Quantity)
	if execErr != nil {
		err = storeErr(execErr)
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if scanErr := tx.QueryRow(ctx, `SELECT EXISTS (
    SELECT 1 FROM campaign_items WHERE campaign_id = $1 AND product_id = $2)`,
			sale.CampaignID, sale.ProductID).Scan(&exists); scanErr != nil {
			err = storeErr(scanErr)
			return err
		}
		if !exists {
			err = domain.ErrNotFound
		} else {
			err = domain.ErrInsufficientStock
		}
		return err
	}
	return nil
}
