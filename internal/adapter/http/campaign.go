package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"flashsale/internal/core/domain"
	"flashsale/internal/core/port"
)

type campaignRequest struct {
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	StartTime          time.Time `json:"start_time"`
	EndTime            time.Time `json:"end_time"`
	DiscountPercentage int       `json:"discount_percentage"`
	MaxDiscountAmount  int64     `json:"max_discount_amount"`
}

func (req campaignRequest) spec() port.CampaignSpec {
	return port.CampaignSpec{
		Name:               req.Name,
		Description:        req.Description,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		DiscountPercentage: req.DiscountPercentage,
		MaxDiscountAmount:  req.MaxDiscountAmount,
	}
}

// handleCreateCampaign creates a campaign from a JSON body. The initial
// status is derived from the time window, so a window already in
// progress comes back ACTIVE. Parsing errors produce HTTP 400.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	c, err := h.svc.CreateCampaign(r.Context(), req.spec())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toCampaignResponse(*c))
}

// handleUpdateCampaign replaces the editable fields of a campaign and
// re-derives its status against the new time window.
func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "campaignID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req campaignRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	c, err := h.svc.UpdateCampaign(r.Context(), id, req.spec())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(*c))
}

// handleGetCampaign returns one campaign with its items, derived
// remaining quantities and the time-derived status alongside the
// persisted one.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "campaignID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	view, err := h.svc.GetCampaign(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toViewResponse(*view))
}

// handleListCampaigns lists campaigns. The optional `status` query
// parameter filters on the persisted status.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	var filter *domain.Status
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.Status(s)
		filter = &status
	}
	views, err := h.svc.ListCampaigns(r.Context(), filter)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]campaignResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toViewResponse(v))
	}
	h.writeJSON(w, http.StatusOK, out)
}

// handleDeleteCampaign deletes a campaign and, through the store,
// all of its line items.
func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "campaignID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err = h.svc.DeleteCampaign(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCancelCampaign moves the campaign to CANCELLED. Repeating the
// request is a no-op, so the endpoint always answers 204 on success.
func (h *Handler) handleCancelCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "campaignID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err = h.svc.CancelCampaign(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSyncStatus reconciles persisted and derived status and reports
// what, if anything, changed.
func (h *Handler) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "campaignID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	res, err := h.svc.SyncStatus(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"campaign_id": res.CampaignID,
		"previous":    res.Previous,
		"current":     res.Current,
		"changed":     res.Changed,
	})
}
