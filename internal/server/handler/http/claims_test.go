package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/okarpov/wishlink/internal/middleware"
	"github.com/okarpov/wishlink/internal/models"
	"github.com/okarpov/wishlink/internal/service"
)

// fakeClaimService implements ClaimService for testing.
type fakeClaimService struct {
	claimReturn *models.Claim
	claimErr    error
	unclaimErr  error
}

func (f *fakeClaimService) Claim(ctx context.Context, userID, itemID string) (*models.Claim, error) {
	return f.claimReturn, f.claimErr
}

func (f *fakeClaimService) Unclaim(ctx context.Context, userID, itemID string) error {
	return f.unclaimErr
}

const testItemID = "7f9d7a48-9a1e-4e89-bb8e-7a2a8a3cdc01"

// newClaimRequest builds an authenticated request carrying the chi URL
// parameter the handler reads.
func newClaimRequest(method, itemID string) *http.Request {
	req := httptest.NewRequest(method, "/api/items/"+itemID+"/claim", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", itemID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = middleware.WithIdentity(ctx, &middleware.Identity{UserID: "user-2"})
	return req.WithContext(ctx)
}

func TestClaimHandler_Claim(t *testing.T) {
	tests := []struct {
		name         string
		itemID       string
		service      *fakeClaimService
		expectedCode int
	}{
		{
			name:   "success",
			itemID: testItemID,
			service: &fakeClaimService{claimReturn: &models.Claim{
				ID: "c1", ItemID: testItemID, ClaimerID: "user-2",
			}},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "invalid id",
			itemID:       "not-a-uuid",
			service:      &fakeClaimService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "already claimed",
			itemID:       testItemID,
			service:      &fakeClaimService{claimErr: service.ErrAlreadyClaimed},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "self claim",
			itemID:       testItemID,
			service:      &fakeClaimService{claimErr: service.ErrSelfClaim},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing item",
			itemID:       testItemID,
			service:      &fakeClaimService{claimErr: service.ErrNotFound},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &ClaimHandler{Service: tt.service, Logger: zap.NewNop()}
			rec := httptest.NewRecorder()
			h.Claim(rec, newClaimRequest("POST", tt.itemID))

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if tt.expectedCode == http.StatusCreated {
				var claim models.Claim
				if err := json.NewDecoder(rec.Body).Decode(&claim); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if claim.ClaimerID != "user-2" {
					t.Errorf("response claimer = %q; want user-2", claim.ClaimerID)
				}
			}
		})
	}
}

func TestClaimHandler_Unclaim(t *testing.T) {
	tests := []struct {
		name         string
		itemID       string
		service      *fakeClaimService
		expectedCode int
	}{
		{
			name:         "success",
			itemID:       testItemID,
			service:      &fakeClaimService{},
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "invalid id",
			itemID:       "nope",
			service:      &fakeClaimService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "no claim or foreign claim",
			itemID:       testItemID,
			service:      &fakeClaimService{unclaimErr: service.ErrNotFound},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &ClaimHandler{Service: tt.service, Logger: zap.NewNop()}
			rec := httptest.NewRecorder()
			h.Unclaim(rec, newClaimRequest("DELETE", tt.itemID))

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}
