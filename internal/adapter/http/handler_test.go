package httpadapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"flashsale/internal/adapter/memory"
	"flashsale/internal/adapter/usecase"
	"flashsale/internal/core/domain"
	"flashsale/internal/core/port"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := memory.NewCampaignRepository()
	catalog := memory.NewProductCatalog(
		port.Product{ID: 1, Name: "Organic Rice 5kg", Price: 120000},
	)
	svc := usecase.NewCampaignUseCase(repo, catalog, domain.SystemClock())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewHandler(svc, logger).Router())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func campaignBody(start, end time.Time) map[string]any {
	return map[string]any{
		"name":                "Harvest Week Sale",
		"description":         "Seasonal produce discounts",
		"start_time":          start.Format(time.RFC3339),
		"end_time":            end.Format(time.RFC3339),
		"discount_percentage": 20,
		"max_discount_amount": 50000,
	}
}

func TestCampaignLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	now := time.Now().UTC()

	// create an already-running campaign
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/campaigns",
		campaignBody(now.Add(-time.Hour), now.Add(time.Hour)))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	decode(t, resp, &created)
	require.Equal(t, "ACTIVE", created.Status)
	base := fmt.Sprintf("%s/api/v1/campaigns/%d", srv.URL, created.ID)

	// attach a product at the catalog price
	resp = doJSON(t, http.MethodPost, base+"/items", map[string]any{
		"product_id":     1,
		"stock_quantity": 10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var item struct {
		OriginalPrice int64 `json:"original_price"`
		DiscountPrice int64 `json:"discount_price"`
		Remaining     int   `json:"remaining"`
	}
	decode(t, resp, &item)
	require.Equal(t, int64(120000), item.OriginalPrice)
	require.Equal(t, int64(96000), item.DiscountPrice)
	require.Equal(t, 10, item.Remaining)

	// adding the same product again conflicts
	resp = doJSON(t, http.MethodPost, base+"/items", map[string]any{
		"product_id":     1,
		"stock_quantity": 5,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// sell some stock, then oversell
	resp = doJSON(t, http.MethodPost, base+"/items/1/sales", map[string]any{"quantity": 8, "token": "order-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, http.MethodPost, base+"/items/1/sales", map[string]any{"quantity": 5, "token": "order-2"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// replaying a token is accepted without double-counting
	resp = doJSON(t, http.MethodPost, base+"/items/1/sales", map[string]any{"quantity": 8, "token": "order-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view struct {
		DerivedStatus string `json:"derived_status"`
		Items         []struct {
			SoldQuantity int `json:"sold_quantity"`
			Remaining    int `json:"remaining"`
		} `json:"items"`
	}
	decode(t, resp, &view)
	require.Equal(t, "ACTIVE", view.DerivedStatus)
	require.Len(t, view.Items, 1)
	require.Equal(t, 8, view.Items[0].SoldQuantity)
	require.Equal(t, 2, view.Items[0].Remaining)

	// edit the discount price; the percentage follows
	resp = doJSON(t, http.MethodPatch, base+"/items/1", map[string]any{"discount_price": 84000})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var patched struct {
		DiscountPercentage int `json:"discount_percentage"`
	}
	decode(t, resp, &patched)
	require.Equal(t, 30, patched.DiscountPercentage)

	// sync is a no-op while status and window agree
	resp = doJSON(t, http.MethodPost, base+"/sync", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sync struct {
		Changed bool `json:"changed"`
	}
	decode(t, resp, &sync)
	require.False(t, sync.Changed)

	// cancel twice, both fine
	resp = doJSON(t, http.MethodPost, base+"/cancel", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = doJSON(t, http.MethodPost, base+"/cancel", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// delete cascades
	resp = doJSON(t, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = doJSON(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListCampaignsStatusFilter(t *testing.T) {
	srv := newTestServer(t)
	now := time.Now().UTC()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/campaigns",
		campaignBody(now.Add(time.Hour), now.Add(2*time.Hour)))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := campaignBody(now.Add(-time.Hour), now.Add(time.Hour))
	body["name"] = "Running Sale"
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/campaigns", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/campaigns?status=UPCOMING", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []struct {
		Name string `json:"name"`
	}
	decode(t, resp, &list)
	require.Len(t, list, 1)
	require.Equal(t, "Harvest Week Sale", list[0].Name)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/campaigns?status=BOGUS", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestErrorStatusCodes(t *testing.T) {
	srv := newTestServer(t)
	now := time.Now().UTC()

	// malformed JSON
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/campaigns", bytes.NewBufferString("{"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// validation failure
	body := campaignBody(now.Add(2*time.Hour), now.Add(time.Hour))
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/campaigns", body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// unknown campaign
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/campaigns/999", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/campaigns/999/cancel", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// non-numeric id
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/campaigns/abc", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
