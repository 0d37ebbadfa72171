package httpadapter

import (
	"encoding/json"
	"net/http"

	"flashsale/internal/core/port"
)

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
	// OriginalPrice overrides the catalog snapshot when set; zero means
	// "look the price up in the catalog".
	OriginalPrice      int64 `json:"original_price"`
	StockQuantity      int   `json:"stock_quantity"`
	DiscountPercentage *int  `json:"discount_percentage"`
}

type updateItemRequest struct {
	DiscountPrice      *int64 `json:"discount_price"`
	DiscountPercentage *int   `json:"discount_percentage"`
}

// handleAddItem attaches a product to the campaign. A product already
// present answers 409.
func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	campaignID, err := pathID(r, "campaignID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req addItemRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	item, err := h.svc.AddItem(r.Context(), campaignID, port.AddItemReq{
		ProductID:          req.ProductID,
		OriginalPrice:      req.OriginalPrice,
		StockQuantity:      req.StockQuantity,
		OverridePercentage: req.DiscountPercentage,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toItemResponse(*item, item.Remaining()))
}

// handleUpdateItem edits the pricing of a line item. Exactly one of
// discount_price and discount_percentage must be present; the edited
// field wins and the other is recomputed.
func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	campaignID, err := pathID(r, "campaignID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	productID, err := pathID(r, "productID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req updateItemRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	item, err := h.svc.UpdateItem(r.Context(), campaignID, productID, port.UpdateItemReq{
		DiscountPrice:      req.DiscountPrice,
		DiscountPercentage: req.DiscountPercentage,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toItemResponse(*item, item.Remaining()))
}

// handleRemoveItem detaches a product from the campaign.
func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	campaignID, err := pathID(r, "campaignID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	productID, err := pathID(r, "productID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err = h.svc.RemoveItem(r.Context(), campaignID, productID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
