package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okarpov/wishlink/internal/middleware"
	"github.com/okarpov/wishlink/internal/models"
)

// ClaimService defines the claim operations required by the ClaimHandler.
type ClaimService interface {
	// Claim reserves an item for the user.
	Claim(ctx context.Context, userID, itemID string) (*models.Claim, error)
	// Unclaim releases the user's claim on an item.
	Unclaim(ctx context.Context, userID, itemID string) error
}

// ClaimHandler handles HTTP requests for claiming and unclaiming items.
type ClaimHandler struct {
	// Service performs the underlying claim operations.
	Service ClaimService
	// Logger records store failures before they are masked as 500s.
	Logger *zap.Logger
}

// Claim handles POST /api/items/{id}/claim.
func (h *ClaimHandler) Claim(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	itemID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(itemID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	claim, err := h.Service.Claim(r.Context(), userID, itemID)
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, claim)
}

// Unclaim handles DELETE /api/items/{id}/claim. Whether the claim was absent
// or held by someone else, the response is the same 404.
func (h *ClaimHandler) Unclaim(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	itemID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(itemID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.Service.Unclaim(r.Context(), userID, itemID); err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
