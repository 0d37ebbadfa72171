package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"flashsale/internal/core/domain"
	"flashsale/internal/core/port"
)

type campaignResponse struct {
	ID                 int64          `json:"id"`
	Name               string         `json:"name"`
	Description        string         `json:"description,omitempty"`
	StartTime          time.Time      `json:"start_time"`
	EndTime            time.Time      `json:"end_time"`
	DiscountPercentage int            `json:"discount_percentage"`
	MaxDiscountAmount  int64          `json:"max_discount_amount"`
	Status             domain.Status  `json:"status"`
	DerivedStatus      domain.Status  `json:"derived_status,omitempty"`
	Items              []itemResponse `json:"items,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

type itemResponse struct {
	ID                 int64 `json:"id"`
	CampaignID         int64 `json:"campaign_id"`
	ProductID          int64 `json:"product_id"`
	OriginalPrice      int64 `json:"original_price"`
	DiscountPrice      int64 `json:"discount_price"`
	DiscountPercentage int   `json:"discount_percentage"`
	StockQuantity      int   `json:"stock_quantity"`
	SoldQuantity       int   `json:"sold_quantity"`
	Remaining          int   `json:"remaining"`
}

func toCampaignResponse(c domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Description:        c.Description,
		StartTime:          c.StartTime,
		EndTime:            c.EndTime,
		DiscountPercentage: c.DiscountPercentage,
		MaxDiscountAmount:  c.MaxDiscountAmount,
		Status:             c.Status,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func toViewResponse(v port.CampaignView) campaignResponse {
	resp := toCampaignResponse(v.Campaign)
	resp.DerivedStatus = v.DerivedStatus
	for _, it := range v.Items {
		resp.Items = append(resp.Items, toItemResponse(it.LineItem, it.Remaining))
	}
	return resp
}

func toItemResponse(it domain.LineItem, remaining int) itemResponse {
	return itemResponse{
		ID:                 it.ID,
		CampaignID:         it.CampaignID,
		ProductID:          it.ProductID,
		OriginalPrice:      it.OriginalPrice,
		DiscountPrice:      it.DiscountPrice,
		DiscountPercentage: it.DiscountPercentage,
		StockQuantity:      it.StockQuantity,
		SoldQuantity:       it.SoldQuantity,
		Remaining:          remaining,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps the domain error taxonomy onto HTTP status codes.
// Store unavailability is 503 so callers know a retry may help;
// everything unexpected is logged and hidden behind a 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrDuplicateProduct):
		http.Error(w, "product already in campaign", http.StatusConflict)
	case errors.Is(err, domain.ErrInsufficientStock):
		http.Error(w, "insufficient stock", http.StatusConflict)
	case errors.Is(err, domain.ErrStoreUnavailable):
		h.logger.Error("store unavailable", slog.Any("error", err))
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: name, Reason: "must be a positive integer"}
	}
	return id, nil
}
