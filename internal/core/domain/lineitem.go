package domain

import "time"

// LineItem is one product's participation in a campaign. OriginalPrice
// is snapshotted from the catalog when the item is added and never
// re-read afterward.
type LineItem struct {
	ID         int64
	CampaignID int64
	ProductID  int64
	// OriginalPrice and DiscountPrice are integer minor units with the
	// invariant 0 <= DiscountPrice < OriginalPrice.
	OriginalPrice int64
	DiscountPrice int64
	// DiscountPercentage is kept consistent with the two prices by the
	// discount calculator; whichever field the caller last edited wins
	// and the other is recomputed from it.
	DiscountPercentage int
	StockQuantity      int
	SoldQuantity       int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Remaining reports the stock still available for sale. It is always
// derived, never stored.
func (it LineItem) Remaining() int {
	remaining := it.StockQuantity - it.SoldQuantity
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Sale is a ledger record of stock sold from a line item. Token is the
// caller-supplied idempotency key; a duplicate token is recorded once.
type Sale struct {
	ID         int64
	Token      string
	CampaignID int64
	ProductID  int64
	Quantity   int
	CreatedAt  time.Time
}
