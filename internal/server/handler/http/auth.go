package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/okarpov/wishlink/internal/middleware"
	"github.com/okarpov/wishlink/internal/models"
)

// UserService defines the user operations required by the AuthHandler.
type UserService interface {
	// RecordSignIn upserts the user's profile as presented by the auth
	// provider and returns the stored record.
	RecordSignIn(ctx context.Context, user models.User) (*models.User, error)
}

// AuthHandler exposes the boundary with the external authentication
// provider: identity arrives as verified token claims, and this handler
// records them.
type AuthHandler struct {
	// UserService performs the underlying user operations.
	UserService UserService
	// Logger records store failures before they are masked as 500s.
	Logger *zap.Logger
}

// CurrentUser handles GET /api/auth/user. It upserts the authenticated
// user's profile from the token claims and returns the stored record.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentityFromContext(r.Context())
	if ident == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.UserService.RecordSignIn(r.Context(), models.User{
		ID:              ident.UserID,
		Email:           ident.Email,
		FirstName:       ident.FirstName,
		LastName:        ident.LastName,
		ProfileImageURL: ident.ProfileImageURL,
	})
	if err != nil {
		writeServiceError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
