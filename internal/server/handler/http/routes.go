package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/okarpov/wishlink/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the wishlink
// API. Request logging and metrics cover every route; bearer-token
// authentication covers everything except the share-token read and the
// operational endpoints.
//
// Routes:
//
//	GET    /healthz                          → health check
//	GET    /metrics                          → Prometheus metrics
//	GET    /api/auth/user                    → current user (upsert from claims)
//	GET    /api/wishlists                    → list own wishlists with counts
//	POST   /api/wishlists                    → create wishlist
//	GET    /api/wishlists/shared/{token}     → read wishlist by share token (public)
//	GET    /api/wishlists/{id}               → read own wishlist with items+claims
//	PATCH  /api/wishlists/{id}               → update own wishlist
//	DELETE /api/wishlists/{id}               → delete own wishlist (cascades)
//	POST   /api/wishlists/{id}/items         → add item to own wishlist
//	PATCH  /api/items/{id}                   → update item on own wishlist
//	DELETE /api/items/{id}                   → delete item on own wishlist
//	POST   /api/items/{id}/claim             → claim item (non-owner)
//	DELETE /api/items/{id}/claim             → unclaim item (claimant only)
func NewRouter(
	authHandler *AuthHandler,
	wishlistHandler *WishlistHandler,
	itemHandler *ItemHandler,
	claimHandler *ClaimHandler,
	healthHandler *HealthHandler,
	logger *zap.Logger,
	jwtSecret []byte,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and record metrics for it
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithMetrics)

	r.Get("/healthz", healthHandler.Check)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/wishlists", func(r chi.Router) {
			// Public share-token read; the token is the credential
			r.Get("/shared/{token}", wishlistHandler.GetShared)

			// Owner-scoped wishlist operations
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(jwtSecret))
				r.Get("/", wishlistHandler.List)
				r.Post("/", wishlistHandler.Create)
				r.Get("/{id}", wishlistHandler.Get)
				r.Patch("/{id}", wishlistHandler.Update)
				r.Delete("/{id}", wishlistHandler.Delete)
				r.Post("/{id}/items", itemHandler.Create)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(jwtSecret))

			r.Get("/auth/user", authHandler.CurrentUser)

			r.Route("/items", func(r chi.Router) {
				r.Patch("/{id}", itemHandler.Update)
				r.Delete("/{id}", itemHandler.Delete)
				r.Post("/{id}/claim", claimHandler.Claim)
				r.Delete("/{id}/claim", claimHandler.Unclaim)
			})
		})
	})

	return r
}
