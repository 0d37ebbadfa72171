package port

import (
	"context"

	"flashsale/internal/core/domain"
)

// CampaignFilter narrows ListCampaigns. Status filters on the persisted
// status field; callers wanting time-accurate filtering must sync first
// or resolve client-side.
type CampaignFilter struct {
	Status *domain.Status
}

// CampaignRepository is the outbound persistence port for campaigns and
// their line items. Implementations must be concurrency-safe and must
// perform RecordSale as an atomic increment-with-check so concurrent
// sales cannot jointly oversell stock.
type CampaignRepository interface {
	// CreateCampaign persists a new campaign and returns its assigned id.
	CreateCampaign(ctx context.Context, c domain.Campaign) (int64, error)
	// GetCampaign returns a campaign by id, or domain.ErrNotFound.
	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)
	// UpdateCampaign overwrites the mutable fields of an existing
	// campaign, including its persisted status.
	UpdateCampaign(ctx context.Context, c domain.Campaign) error
	// DeleteCampaign removes a campaign and all of its line items.
	DeleteCampaign(ctx context.Context, id int64) error
	// ListCampaigns returns campaigns matching the filter.
	ListCampaigns(ctx context.Context, f CampaignFilter) ([]domain.Campaign, error)

	// UpdateStatus conditionally rewrites the persisted status from the
	// expected previous value. It reports false without error when the
	// row no longer carries the expected value, which means a concurrent
	// writer got there first.
	UpdateStatus(ctx context.Context, id int64, from, to domain.Status) (bool, error)
	// CancelCampaign unconditionally sets the persisted status to
	// CANCELLED. Cancelling an already-cancelled campaign is a no-op.
	CancelCampaign(ctx context.Context, id int64) error

	// CreateItem persists a new line item. A (campaignId, productId)
	// pair already present yields domain.ErrDuplicateProduct.
	CreateItem(ctx context.Context, item domain.LineItem) (int64, error)
	// GetItem returns the line item for the pair, or domain.ErrNotFound.
	GetItem(ctx context.Context, campaignID, productID int64) (*domain.LineItem, error)
	// UpdateItemPricing rewrites the discount price and percentage of an
	// existing line item.
	UpdateItemPricing(ctx context.Context, campaignID, productID, discountPrice int64, discountPercentage int) error
	// DeleteItem removes one line item, or domain.ErrNotFound.
	DeleteItem(ctx context.Context, campaignID, productID int64) error
	// ListItems returns all line items of a campaign.
	ListItems(ctx context.Context, campaignID int64) ([]domain.LineItem, error)

	// RecordSale appends a sale ledger row and increments the item's
	// soldQuantity in one atomic step, refusing with
	// domain.ErrInsufficientStock when the increment would exceed
	// stockQuantity. A sale whose token was already recorded is an
	// idempotent no-op.
	RecordSale(ctx context.Context, sale domain.Sale) error
}
