package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/okarpov/wishlink/internal/middleware"
	"github.com/okarpov/wishlink/internal/models"
)

// fakeUserService implements UserService for testing.
type fakeUserService struct {
	recordReturn *models.User
	recordErr    error
}

func (f *fakeUserService) RecordSignIn(ctx context.Context, user models.User) (*models.User, error) {
	if f.recordReturn != nil || f.recordErr != nil {
		return f.recordReturn, f.recordErr
	}
	return &user, nil
}

func TestAuthHandler_CurrentUser(t *testing.T) {
	h := &AuthHandler{UserService: &fakeUserService{}, Logger: zap.NewNop()}

	req := httptest.NewRequest("GET", "/api/auth/user", nil)
	ctx := middleware.WithIdentity(req.Context(), &middleware.Identity{
		UserID: "user-1", Email: "a@example.com", FirstName: "Ada",
	})
	rec := httptest.NewRecorder()
	h.CurrentUser(rec, req.WithContext(ctx))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var user models.User
	if err := json.NewDecoder(rec.Body).Decode(&user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.ID != "user-1" || user.Email != "a@example.com" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestAuthHandler_CurrentUser_NoIdentity(t *testing.T) {
	h := &AuthHandler{UserService: &fakeUserService{}, Logger: zap.NewNop()}

	rec := httptest.NewRecorder()
	h.CurrentUser(rec, httptest.NewRequest("GET", "/api/auth/user", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_CurrentUser_StoreFailure(t *testing.T) {
	h := &AuthHandler{
		UserService: &fakeUserService{recordErr: errors.New("db down")},
		Logger:      zap.NewNop(),
	}

	req := httptest.NewRequest("GET", "/api/auth/user", nil)
	ctx := middleware.WithIdentity(req.Context(), &middleware.Identity{UserID: "user-1"})
	rec := httptest.NewRecorder()
	h.CurrentUser(rec, req.WithContext(ctx))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
