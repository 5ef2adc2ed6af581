package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/okarpov/wishlink/internal/models"
)

// ClaimRepository defines the persistence operations needed by the
// ClaimService.
type ClaimRepository interface {
	// GetItemOwner returns the owner of the wishlist containing the item,
	// or repository.ErrNotFound if the item does not exist.
	GetItemOwner(ctx context.Context, itemID string) (string, error)
	// Create inserts a claim. The store's unique constraint on item_id
	// arbitrates concurrent inserts; losers get repository.ErrAlreadyClaimed.
	Create(ctx context.Context, claim *models.Claim) error
	// Delete removes the claim on an item iff it belongs to claimerID.
	Delete(ctx context.Context, itemID, claimerID string) error
}

// ClaimService enforces the claim rules: at most one active claim per item,
// no self-claims, and unclaim only by the claimant. It holds no locks; the
// store's unique constraint is the single point of serialization.
type ClaimService struct {
	repo ClaimRepository
}

// NewClaimService constructs a ClaimService with the provided repository.
func NewClaimService(repo ClaimRepository) *ClaimService {
	return &ClaimService{repo: repo}
}

// Claim reserves an item for the given user. It fails with ErrNotFound if
// the item does not exist, ErrSelfClaim if the user owns the item's
// wishlist, and ErrAlreadyClaimed if an active claim exists. The existence
// check is advisory; the insert itself decides races.
func (s *ClaimService) Claim(ctx context.Context, userID, itemID string) (*models.Claim, error) {
	ownerID, err := s.repo.GetItemOwner(ctx, itemID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if ownerID == userID {
		return nil, ErrSelfClaim
	}

	claim := &models.Claim{
		ID:        uuid.NewString(),
		ItemID:    itemID,
		ClaimerID: userID,
	}
	if err := s.repo.Create(ctx, claim); err != nil {
		return nil, mapRepoError(err)
	}
	return claim, nil
}

// Unclaim releases the user's claim on an item. No active claim and a claim
// held by someone else both fail with ErrNotFound; the response never
// reveals whether the item is claimed.
func (s *ClaimService) Unclaim(ctx context.Context, userID, itemID string) error {
	return mapRepoError(s.repo.Delete(ctx, itemID, userID))
}
