package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/okarpov/wishlink/internal/models"
)

// PostgresClaimRepository implements claim persistence against a PostgreSQL
// database. The one-claim-per-item invariant lives in the UNIQUE constraint
// on claims.item_id; this repository translates constraint violations into
// domain errors rather than treating them as failures.
type PostgresClaimRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresClaimRepository creates a new PostgresClaimRepository using the
// provided *sql.DB.
func NewPostgresClaimRepository(db *sql.DB) *PostgresClaimRepository {
	return &PostgresClaimRepository{DB: db}
}

// GetItemOwner returns the owner of the wishlist containing the item.
// Returns ErrNotFound when the item does not exist.
func (r *PostgresClaimRepository) GetItemOwner(ctx context.Context, itemID string) (string, error) {
	var ownerID string
	err := r.DB.QueryRowContext(ctx, `
		SELECT w.owner_id
		FROM items i
		JOIN wishlists w ON w.id = i.wishlist_id
		WHERE i.id = $1
	`, itemID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("GetItemOwner: %w", err)
	}
	return ownerID, nil
}

// Create inserts a claim and fills in its timestamp. Concurrent inserts for
// the same item serialize on the item_id UNIQUE constraint: exactly one
// wins, the rest get ErrAlreadyClaimed. An item deleted between the caller's
// existence check and the insert surfaces as ErrNotFound via the foreign
// key.
func (r *PostgresClaimRepository) Create(ctx context.Context, claim *models.Claim) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO claims (id, item_id, claimer_id)
		VALUES ($1, $2, $3)
		RETURNING claimed_at
	`, claim.ID, claim.ItemID, claim.ClaimerID).Scan(&claim.ClaimedAt)
	if isPQError(err, uniqueViolation) {
		return ErrAlreadyClaimed
	}
	if isPQError(err, foreignKeyViolation) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("Create claim: %w", err)
	}
	return nil
}

// Delete removes the claim on the given item, but only if it belongs to
// claimerID. No claim and someone else's claim both return ErrNotFound; the
// caller cannot learn whether (or by whom) the item is claimed.
func (r *PostgresClaimRepository) Delete(ctx context.Context, itemID, claimerID string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM claims WHERE item_id = $1 AND claimer_id = $2
	`, itemID, claimerID)
	if err != nil {
		return fmt.Errorf("Delete claim: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete claim rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
