package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lostfound/moderation/internal/moderation"
	"github.com/lostfound/moderation/internal/observability"
	"github.com/lostfound/moderation/internal/services"
	"github.com/lostfound/moderation/internal/store"
	"github.com/lostfound/moderation/types"
)

// ItemHandler provides HTTP handlers for listing moderation.
type ItemHandler struct {
	items    *services.ItemService
	metrics  *observability.Metrics
	validate *validator.Validate
}

// NewItemHandler constructs a handler with the provided service.
func NewItemHandler(items *services.ItemService, metrics *observability.Metrics) *ItemHandler {
	return &ItemHandler{
		items:    items,
		metrics:  metrics,
		validate: validator.New(),
	}
}

// ItemRouter registers item routes on the given router. limiter, when not
// nil, guards status changes.
func ItemRouter(
	r chi.Router,
	items *services.ItemService,
	metrics *observability.Metrics,
	limiter func(http.Handler) http.Handler,
) {
	handler := NewItemHandler(items, metrics)

	r.Get("/", handler.ListItems)
	r.Route("/{itemID}", func(r chi.Router) {
		r.Get("/", handler.GetItem)
		if limiter != nil {
			r.With(limiter).Put("/", handler.UpdateItem)
		} else {
			r.Put("/", handler.UpdateItem)
		}
	})
}

func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	filter, err := moderation.ParseItemFilter(r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.items.List(r.Context(), filter, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	writeJSON(w, http.StatusOK, ItemListResponse{Items: items})
}

func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseRecordID(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.items.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch item")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseRecordID(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req ItemStatusRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := types.ItemStatus(req.Status)
	action, err := moderation.ItemActionFor(status)
	if err != nil {
		writeModerationError(w, err, "item")
		return
	}

	updated, err := h.items.SetStatus(r.Context(), id, status)
	h.metrics.ObserveAction(services.KindItem, string(action), err)
	if err != nil {
		writeModerationError(w, err, "item")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// ItemStatusRequest is the payload of PUT /api/admin/items/{itemID}.
type ItemStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// ItemListResponse is the list response payload.
type ItemListResponse struct {
	Items []types.Item `json:"items"`
}
