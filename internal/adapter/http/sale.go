package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"flashsale/internal/core/port"
)

type recordSaleRequest struct {
	Quantity int `json:"quantity"`
	// Token is the caller's idempotency key. The order pipeline should
	// supply one so an ambiguous failure can be retried safely; when
	// absent one is minted here and the retry guarantee is lost.
	Token string `json:"token"`
}

// handleRecordSale records units sold against a line item. Overselling
// answers 409 with no change to the item.
func (h *Handler) handleRecordSale(w http.ResponseWriter, r *http.Request) {
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
	var req recordSaleRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Token == "" {
		req.Token = uuid.NewString()
	}
	err = h.svc.RecordSale(r.Context(), campaignID, productID, port.RecordSaleReq{
		Quantity: req.Quantity,
		Token:    req.Token,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"token": req.Token})
}
