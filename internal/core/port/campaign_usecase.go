package port

import (
	"context"
	"time"

	"flashsale/internal/core/domain"
)

// CampaignSpec carries the administrator-editable fields of a campaign
// for create and update operations.
type CampaignSpec struct {
	Name               string
	Description        string
	StartTime          time.Time
	EndTime            time.Time
	DiscountPercentage int
	MaxDiscountAmount  int64
}

// AddItemReq describes a product being attached to a campaign. When
// OriginalPrice is zero the price is snapshotted from the product
// catalog. OverridePercentage, when set, replaces the campaign default.
type AddItemReq struct {
	ProductID          int64
	OriginalPrice      int64
	StockQuantity      int
	OverridePercentage *int
}

// UpdateItemReq edits the pricing of an existing line item. Exactly one
// field must be set; the edited field is authoritative and the other is
// recomputed from it.
type UpdateItemReq struct {
	DiscountPrice      *int64
	DiscountPercentage *int
}

// RecordSaleReq records quantity units sold against a line item. Token
// is an idempotency key; retrying with the same token never
// double-counts the sale.
type RecordSaleReq struct {
	Quantity int
	Token    string
}

// SyncResult reports the outcome of one status reconciliation. Changed
// is false when the persisted status already matched and no write was
// performed.
type SyncResult struct {
	CampaignID int64
	Previous   domain.Status
	Current    domain.Status
	Changed    bool
}

// ItemView is a line item enriched with its derived remaining stock.
type ItemView struct {
	domain.LineItem
	Remaining int
}

// CampaignView is a campaign enriched with its time-derived status and
// line items, as served to display callers. DerivedStatus is computed
// on read and never written back by a read.
type CampaignView struct {
	domain.Campaign
	DerivedStatus domain.Status
	Items         []ItemView
}

// CampaignUseCase is the primary port into the flash sale core. All
// operations take and return plain data; transport concerns stay in the
// adapters.
type CampaignUseCase interface {
	// CreateCampaign validates the spec, derives the initial status from
	// the clock and persists the campaign with an empty line-item set.
	CreateCampaign(ctx context.Context, spec CampaignSpec) (*domain.Campaign, error)
	// UpdateCampaign revalidates and persists the spec, re-deriving the
	// status against the new time window.
	UpdateCampaign(ctx context.Context, id int64, spec CampaignSpec) (*domain.Campaign, error)
	// DeleteCampaign removes the campaign and all of its line items.
	DeleteCampaign(ctx context.Context, id int64) error
	// GetCampaign returns the campaign with items and derived status.
	GetCampaign(ctx context.Context, id int64) (*CampaignView, error)
	// ListCampaigns returns campaigns, optionally filtered by persisted
	// status, each with its derived status.
	ListCampaigns(ctx context.Context, status *domain.Status) ([]CampaignView, error)
	// CancelCampaign transitions the campaign to CANCELLED. Cancelling
	// an already-cancelled campaign is a no-op, not an error.
	CancelCampaign(ctx context.Context, id int64) error

	// ResolveStatus returns the time-derived status without mutating
	// anything.
	ResolveStatus(ctx context.Context, id int64) (domain.Status, error)
	// SyncStatus compares derived and persisted status and writes the
	// correction only when they differ.
	SyncStatus(ctx context.Context, id int64) (*SyncResult, error)
	// SyncAll reconciles every campaign whose persisted status is not
	// yet final. Intended for a periodic reconciler.
	SyncAll(ctx context.Context) ([]SyncResult, error)

	// AddItem attaches a product to the campaign under the line-item
	// invariants.
	AddItem(ctx context.Context, campaignID int64, req AddItemReq) (*domain.LineItem, error)
	// UpdateItem edits the pricing of a line item, keeping price and
	// percentage consistent.
	UpdateItem(ctx context.Context, campaignID, productID int64, req UpdateItemReq) (*domain.LineItem, error)
	// RemoveItem detaches a product from the campaign.
	RemoveItem(ctx context.Context, campaignID, productID int64) error
	// RecordSale atomically increments the item's sold quantity.
	RecordSale(ctx context.Context, campaignID, productID int64, req RecordSaleReq) error
}
