package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"flashsale/internal/core/domain"
	"flashsale/internal/core/port"
)

func seedCampaign(t *testing.T, repo *CampaignRepository) int64 {
	t.Helper()
	id, err := repo.CreateCampaign(context.Background(), domain.Campaign{
		Name:               "Harvest Week Sale",
		StartTime:          time.Now().Add(-time.Hour),
		EndTime:            time.Now().Add(time.Hour),
		DiscountPercentage: 20,
		MaxDiscountAmount:  50000,
		Status:             domain.StatusActive,
	})
	require.NoError(t, err)
	return id
}

func TestCreateItemRejectsDuplicatePair(t *testing.T) {
	repo := NewCampaignRepository()
	ctx := context.Background()
	id := seedCampaign(t, repo)

	item := domain.LineItem{
		CampaignID: id, ProductID: 7,
		OriginalPrice: 1000, DiscountPrice: 800, DiscountPercentage: 20,
		StockQuantity: 5,
	}
	_, err := repo.CreateItem(ctx, item)
	require.NoError(t, err)
	_, err = repo.CreateItem(ctx, item)
	require.ErrorIs(t, err, domain.ErrDuplicateProduct)

	// Same product in a different campaign is fine.
	other := seedCampaign(t, repo)
	item.CampaignID = other
	_, err = repo.CreateItem(ctx, item)
	require.NoError(t, err)
}

func TestUpdateStatusIsCompareAndSet(t *testing.T) {
	repo := NewCampaignRepository()
	ctx := context.Background()
	id := seedCampaign(t, repo)

	wrote, err := repo.UpdateStatus(ctx, id, domain.StatusActive, domain.StatusEnded)
	require.NoError(t, err)
	require.True(t, wrote)

	// Expected value is stale now, so the write is refused.
	wrote, err = repo.UpdateStatus(ctx, id, domain.StatusActive, domain.StatusCancelled)
	require.NoError(t, err)
	require.False(t, wrote)

	c, err := repo.GetCampaign(ctx, id)
	require.NoError(t, err)
	require.Equal(t, domain.StatusEnded, c.Status)

	_, err = repo.UpdateStatus(ctx, 42, domain.StatusActive, domain.StatusEnded)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// TestRecordSaleConcurrent hammers one item from many goroutines; the
// final sold quantity must land exactly on the stock, never past it.
func TestRecordSaleConcurrent(t *testing.T) {
	repo := NewCampaignRepository()
	ctx := context.Background()
	id := seedCampaign(t, repo)

	const stock = 50
	_, err := repo.CreateItem(ctx, domain.LineItem{
		CampaignID: id, ProductID: 7,
		OriginalPrice: 1000, DiscountPrice: 800, DiscountPercentage: 20,
		StockQuantity: stock,
	})
	require.NoError(t, err)

	const workers = 80
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_ = repo.RecordSale(ctx, domain.Sale{
				Token: fmt.Sprintf("tok-%d", i), CampaignID: id, ProductID: 7, Quantity: 1,
			})
		}(i)
	}
	wg.Wait()

	item, err := repo.GetItem(ctx, id, 7)
	require.NoError(t, err)
	require.Equal(t, stock, item.SoldQuantity)
}

func TestRecordSaleDuplicateTokenIsNoOp(t *testing.T) {
	repo := NewCampaignRepository()
	ctx := context.Background()
	id := seedCampaign(t, repo)

	_, err := repo.CreateItem(ctx, domain.LineItem{
		CampaignID: id, ProductID: 7,
		OriginalPrice: 1000, DiscountPrice: 800, DiscountPercentage: 20,
		StockQuantity: 10,
	})
	require.NoError(t, err)

	sale := domain.Sale{Token: "once", CampaignID: id, ProductID: 7, Quantity: 3}
	require.NoError(t, repo.RecordSale(ctx, sale))
	require.NoError(t, repo.RecordSale(ctx, sale))

	item, err := repo.GetItem(ctx, id, 7)
	require.NoError(t, err)
	require.Equal(t, 3, item.SoldQuantity)
}

func TestDeleteCampaignRemovesItems(t *testing.T) {
	repo := NewCampaignRepository()
	ctx := context.Background()
	id := seedCampaign(t, repo)

	_, err := repo.CreateItem(ctx, domain.LineItem{
		CampaignID: id, ProductID: 7,
		OriginalPrice: 1000, DiscountPrice: 800, DiscountPercentage: 20,
		StockQuantity: 5,
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteCampaign(ctx, id))
	_, err = repo.GetItem(ctx, id, 7)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.ListItems(ctx, id)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCampaignsFilter(t *testing.T) {
	repo := NewCampaignRepository()
	ctx := context.Background()

	active := seedCampaign(t, repo)
	_, err := repo.CreateCampaign(ctx, domain.Campaign{
		Name:               "Later",
		StartTime:          time.Now().Add(time.Hour),
		EndTime:            time.Now().Add(2 * time.Hour),
		DiscountPercentage: 10,
		MaxDiscountAmount:  1000,
		Status:             domain.StatusUpcoming,
	})
	require.NoError(t, err)

	status := domain.StatusActive
	got, err := repo.ListCampaigns(ctx, port.CampaignFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, active, got[0].ID)

	all, err := repo.ListCampaigns(ctx, port.CampaignFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
}
