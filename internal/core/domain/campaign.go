package domain

import "time"

// Campaign is a time-bounded flash sale grouping discounted line items.
// Monetary values are stored in integer minor units (e.g. cents).
type Campaign struct {
	ID          int64
	Name        string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	// DiscountPercentage is the campaign-level default applied to newly
	// added line items, in the range [1, 100].
	DiscountPercentage int
	// MaxDiscountAmount is an advisory cap collected from the
	// administrator. It is stored and validated as positive but not
	// enforced against line-item prices.
	MaxDiscountAmount int64
	// Status is the last persisted lifecycle status. It may lag the
	// time-derived status until a sync writes the correction; use
	// Resolve for the time-accurate value.
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
