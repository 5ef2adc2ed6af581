package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okarpov/wishlink/internal/middleware"
	"github.com/okarpov/wishlink/internal/models"
	"github.com/okarpov/wishlink/internal/service"
)

// ItemService defines the item operations required by the ItemHandler.
type ItemService interface {
	// CreateItem adds an item to a wishlist on behalf of its owner.
	CreateItem(ctx context.Context, ownerID, wishlistID string, in service.CreateItemInput) (*models.Item, error)
	// UpdateItem applies a partial update on behalf of the parent's owner.
	UpdateItem(ctx context.Context, ownerID, id string, in service.UpdateItemInput) (*models.Item, error)
	// DeleteItem removes an item on behalf of the parent's owner.
	DeleteItem(ctx context.Context, ownerID, id string) error
}

// ItemHandler handles HTTP requests for wishlist items.
type ItemHandler struct {
	// Service performs the underlying item operations.
	Service ItemService
	// Logger records store failures before they are masked as 500s.
	Logger *zap.Logger
}

// Create handles POST /api/wishlists/{id}/items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	wishlistID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(wishlistID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid wishlist id")
		return
	}

	var in service.CreateItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	item, err := h.Service.CreateItem(r.Context(), userID, wishlistID, in)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Update handles PATCH /api/items/{id}. Only fields present in the body are
// changed; an item can never be moved to another wishlist.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var in service.UpdateItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	item, err := h.Service.UpdateItem(r.Context(), userID, id, in)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}. A claim on the item goes with it.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.Service.DeleteItem(r.Context(), userID, id); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
