package usecase

import (
	"context"

	"flashsale/internal/core/domain"
	"flashsale/internal/core/port"
)

// AddItem attaches a product to a campaign. The original price is
// snapshotted from the catalog unless the caller supplies one, the
// discount percentage defaults to the campaign's, and the discount
// price is computed from whichever percentage applies.
func (u *CampaignUseCase) AddItem(ctx context.Context, campaignID int64, req port.AddItemReq) (*domain.LineItem, error) {
	c, err := u.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if req.StockQuantity < 1 {
		return nil, &domain.ValidationError{Field: "stockQuantity", Reason: "must be at least 1"}
	}

	originalPrice := req.OriginalPrice
	if originalPrice == 0 {
		product, err := u.catalog.GetProduct(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}
		originalPrice = product.Price
	}
	if originalPrice <= 0 {
		return nil, &domain.ValidationError{Field: "originalPrice", Reason: "must be positive"}
	}

	pct := c.DiscountPercentage
	if req.OverridePercentage != nil {
		pct = *req.OverridePercentage
	}
	discountPrice, err := domain.PriceFromPercentage(originalPrice, pct)
	if err != nil {
		return nil, err
	}
	if discountPrice >= originalPrice {
		return nil, &domain.ValidationError{Field: "discountPercentage", Reason: "results in no discount"}
	}

	item := domain.LineItem{
		CampaignID:         campaignID,
		ProductID:          req.ProductID,
		OriginalPrice:      originalPrice,
		DiscountPrice:      discountPrice,
		DiscountPercentage: pct,
		StockQuantity:      req.StockQuantity,
		SoldQuantity:       0,
	}
	if _, err = u.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return u.repo.GetItem(ctx, campaignID, req.ProductID)
}

// UpdateItem edits the pricing of a line item. The edited field is
// authoritative for the edit and the other field is recomputed from it,
// so price and percentage can never drift apart.
func (u *CampaignUseCase) UpdateItem(ctx context.Context, campaignID, productID int64, req port.UpdateItemReq) (*domain.LineItem, error) {
	if (req.DiscountPrice == nil) == (req.DiscountPercentage == nil) {
		return nil, &domain.ValidationError{Field: "body", Reason: "exactly one of discountPrice or discountPercentage must be set"}
	}
	item, err := u.repo.GetItem(ctx, campaignID, productID)
	if err != nil {
		return nil, err
	}

	var price int64
	var pct int
	switch {
	case req.DiscountPrice != nil:
		price = *req.DiscountPrice
		if price < 0 || price >= item.OriginalPrice {
			return nil, &domain.ValidationError{Field: "discountPrice", Reason: "must be at least 0 and below the original price"}
		}
		if pct, err = domain.PercentageFromPrice(item.OriginalPrice, price); err != nil {
			return nil, err
		}
	default:
		pct = *req.DiscountPercentage
		if price, err = domain.PriceFromPercentage(item.OriginalPrice, pct); err != nil {
			return nil, err
		}
		if price >= item.OriginalPrice {
			return nil, &domain.ValidationError{Field: "discountPercentage", Reason: "results in no discount"}
		}
	}

	if err = u.repo.UpdateItemPricing(ctx, campaignID, productID, price, pct); err != nil {
		return nil, err
	}
	return u.repo.GetItem(ctx, campaignID, productID)
}

// RemoveItem detaches a product from a campaign. Removing a product
// that is not in the campaign is domain.ErrNotFound.
func (u *CampaignUseCase) RemoveItem(ctx context.Context, campaignID, productID int64) error {
	return u.repo.DeleteItem(ctx, campaignID, productID)
}

// RecordSale increments the item's sold quantity by req.Quantity. The
// store performs the increment atomically against the stock check, so
// concurrent sales cannot jointly oversell. Retrying with the same
// token is safe.
func (u *CampaignUseCase) RecordSale(ctx context.Context, campaignID, productID int64, req port.RecordSaleReq) error {
	if req.Quantity < 1 {
		return &domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if req.Token == "" {
		return &domain.ValidationError{Field: "token", Reason: "must not be empty"}
	}
	return u.repo.RecordSale(ctx, domain.Sale{
		Token:      req.Token,
		CampaignID: campaignID,
		ProductID:  productID,
		Quantity:   req.Quantity,
	})
}
