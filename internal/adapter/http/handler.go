package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"flashsale/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter
// for HTTP: the admin console, the storefront read path and the order
// pipeline all talk to the campaign usecase through it. Routes are
// registered on a chi.Router for convenient method handling.
type Handler struct {
	svc    port.CampaignUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. It accepts a
// CampaignUseCase implementation and a logger. The returned Handler
// registers handlers for each endpoint on a new chi.Router.
func NewHandler(svc port.CampaignUseCase, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.handleCreateCampaign)
			r.Get("/", h.handleListCampaigns)
			r.Route("/{campaignID}", func(r chi.Router) {
				r.Get("/", h.handleGetCampaign)
				r.Put("/", h.handleUpdateCampaign)
				r.Delete("/", h.handleDeleteCampaign)
				r.Post("/cancel", h.handleCancelCampaign)
				r.Post("/sync", h.handleSyncStatus)
				r.Post("/items", h.handleAddItem)
				r.Route("/items/{productID}", func(r chi.Router) {
					r.Patch("/", h.handleUpdateItem)
					r.Delete("/", h.handleRemoveItem)
					r.Post("/sales", h.handleRecordSale)
				})
			})
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
