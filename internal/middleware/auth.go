// Package middleware provides HTTP middlewares for authentication, request
// logging, and metrics.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the authenticated-user identity extracted from a session
// token. Session issuance itself is the auth provider's job; this package
// only verifies what the provider signed.
type Identity struct {
	// UserID is the provider-assigned user id ("sub" claim).
	UserID string
	// Email is the user's email address, when present in the token.
	Email string
	// FirstName is the user's given name, when present.
	FirstName string
	// LastName is the user's family name, when present.
	LastName string
	// ProfileImageURL is the user's avatar URL, when present.
	ProfileImageURL string
}

// Auth returns a middleware that requires a valid HMAC-signed bearer token
// on every request. On success the token's identity claims are stored in the
// request context for downstream handlers; otherwise the request is rejected
// with 401 before reaching them.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, err := identityFromRequest(r, secret)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func identityFromRequest(r *http.Request, secret []byte) (*Identity, error) {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, fmt.Errorf("missing bearer token")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	ident := &Identity{UserID: sub}
	ident.Email, _ = claims["email"].(string)
	ident.FirstName, _ = claims["first_name"].(string)
	ident.LastName, _ = claims["last_name"].(string)
	ident.ProfileImageURL, _ = claims["profile_image_url"].(string)
	return ident, nil
}

// GetIdentityFromContext extracts the authenticated identity from the
// request context. Returns nil if the request was not authenticated.
func GetIdentityFromContext(ctx context.Context) *Identity {
	ident, _ := ctx.Value(identityKey).(*Identity)
	return ident
}

// GetUserIDFromContext extracts the authenticated user id from the request
// context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	if ident := GetIdentityFromContext(ctx); ident != nil {
		return ident.UserID
	}
	return ""
}

// WithIdentity returns a copy of ctx carrying the given identity. Intended
// for tests that exercise handlers without the Auth middleware.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}
