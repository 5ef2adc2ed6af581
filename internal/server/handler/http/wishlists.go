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

// WishlistService defines the wishlist operations required by the
// WishlistHandler.
type WishlistService interface {
	// List returns the owner's wishlists with derived counts.
	List(ctx context.Context, ownerID string) ([]models.WishlistSummary, error)
	// Get returns an owner-scoped wishlist with items and claims.
	Get(ctx context.Context, ownerID, id string) (*models.WishlistDetail, error)
	// GetShared resolves a share token to a wishlist with items and claims.
	GetShared(ctx context.Context, token string) (*models.WishlistDetail, error)
	// Create makes a new wishlist with a generated share token.
	Create(ctx context.Context, ownerID string, in service.CreateWishlistInput) (*models.Wishlist, error)
	// Update applies a partial update to the owner's wishlist.
	Update(ctx context.Context, ownerID, id string, in service.UpdateWishlistInput) (*models.Wishlist, error)
	// Delete removes the owner's wishlist and its descendants.
	Delete(ctx context.Context, ownerID, id string) error
}

// WishlistHandler handles HTTP requests for wishlists, including the
// unauthenticated share-token read.
type WishlistHandler struct {
	// Service performs the underlying wishlist operations.
	Service WishlistService
	// Logger records store failures before they are masked as 500s.
	Logger *zap.Logger
}

// List handles GET /api/wishlists.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	summaries, err := h.Service.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// Get handles GET /api/wishlists/{id}. A wishlist owned by someone else
// looks exactly like a missing one.
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid wishlist id")
		return
	}

	detail, err := h.Service.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// GetShared handles GET /api/wishlists/shared/{token}. No authentication;
// the token is the credential.
func (h *WishlistHandler) GetShared(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	detail, err := h.Service.GetShared(r.Context(), token)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Create handles POST /api/wishlists.
func (h *WishlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var in service.CreateWishlistInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	wishlist, err := h.Service.Create(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, wishlist)
}

// Update handles PATCH /api/wishlists/{id}. Only fields present in the body
// are changed.
func (h *WishlistHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid wishlist id")
		return
	}

	var in service.UpdateWishlistInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	wishlist, err := h.Service.Update(r.Context(), userID, id, in)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, wishlist)
}

// Delete handles DELETE /api/wishlists/{id}.
func (h *WishlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid wishlist id")
		return
	}

	if err := h.Service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
