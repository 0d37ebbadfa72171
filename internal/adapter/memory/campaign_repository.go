package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"flashsale/internal/core/domain"
	"flashsale/internal/core/port"
)

// CampaignRepository is a mutex-guarded in-memory implementation of
// port.CampaignRepository. It backs the test suite and local runs
// without a database; the single mutex gives it the same atomicity
// guarantees the postgres adapter gets from transactions.
type CampaignRepository struct {
	mu sync.RWMutex

	campaigns map[int64]domain.Campaign
	// items is keyed campaignID -> productID -> item.
	items      map[int64]map[int64]domain.LineItem
	saleTokens map[string]struct{}

	nextCampaignID int64
	nextItemID     int64
}

// NewCampaignRepository returns an empty in-memory repository.
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{
		campaigns:  make(map[int64]domain.Campaign),
		items:      make(map[int64]map[int64]domain.LineItem),
		saleTokens: make(map[string]struct{}),
	}
}

func (r *CampaignRepository) CreateCampaign(_ context.Context, c domain.Campaign) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextCampaignID++
	c.ID = r.nextCampaignID
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	r.campaigns[c.ID] = c
	r.items[c.ID] = make(map[int64]domain.LineItem)
	return c.ID, nil
}

func (r *CampaignRepository) GetCampaign(_ context.Context, id int64) (*domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *CampaignRepository) UpdateCampaign(_ context.Context, c domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.campaigns[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	r.campaigns[c.ID] = c
	return nil
}

func (r *CampaignRepository) DeleteCampaign(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.campaigns[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.campaigns, id)
	delete(r.items, id)
	return nil
}

func (r *CampaignRepository) ListCampaigns(_ context.Context, f port.CampaignFilter) ([]domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		if f.Status != nil && c.Status != *f.Status {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CampaignRepository) UpdateStatus(_ context.Context, id int64, from, to domain.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.campaigns[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if c.Status != from {
		return false, nil
	}
	c.Status = to
	c.UpdatedAt = time.Now().UTC()
	r.campaigns[id] = c
	return true, nil
}

func (r *CampaignRepository) CancelCampaign(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.campaigns[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Status = domain.StatusCancelled
	c.UpdatedAt = time.Now().UTC()
	r.campaigns[id] = c
	return nil
}

func (r *CampaignRepository) CreateItem(_ context.Context, item domain.LineItem) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byProduct, ok := r.items[item.CampaignID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if _, exists := byProduct[item.ProductID]; exists {
		return 0, domain.ErrDuplicateProduct
	}
	r.nextItemID++
	item.ID = r.nextItemID
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt
	byProduct[item.ProductID] = item
	return item.ID, nil
}

func (r *CampaignRepository) GetItem(_ context.Context, campaignID, productID int64) (*domain.LineItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[campaignID][productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (r *CampaignRepository) UpdateItemPricing(_ context.Context, campaignID, productID, discountPrice int64, discountPercentage int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[campaignID][productID]
	if !ok {
		return domain.ErrNotFound
	}
	item.DiscountPrice = discountPrice
	item.DiscountPercentage = discountPercentage
	item.UpdatedAt = time.Now().UTC()
	r.items[campaignID][productID] = item
	return nil
}

func (r *CampaignRepository) DeleteItem(_ context.Context, campaignID, productID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[campaignID][productID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items[campaignID], productID)
	return nil
}

func (r *CampaignRepository) ListItems(_ context.Context, campaignID int64) ([]domain.LineItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byProduct, ok := r.items[campaignID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.LineItem, 0, len(byProduct))
	for _, item := range byProduct {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CampaignRepository) RecordSale(_ context.Context, sale domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, seen := r.saleTokens[sale.Token]; seen {
		return nil
	}
	item, ok := r.items[sale.CampaignID][sale.ProductID]
	if !ok {
		return domain.ErrNotFound
	}
	if item.SoldQuantity+sale.Quantity > item.StockQuantity {
		return domain.ErrInsufficientStock
	}
	item.SoldQuantity += sale.Quantity
	item.UpdatedAt = time.Now().UTC()
	r.items[sale.CampaignID][sale.ProductID] = item
	r.saleTokens[sale.Token] = struct{}{}
	return nil
}
