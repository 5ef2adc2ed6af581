package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/okarpov/wishlink/internal/models"
)

// PostgresWishlistRepository implements wishlist persistence against a
// PostgreSQL database. All mutations are scoped by owner in the statement
// itself, so an ownership check and its mutation cannot be separated by a
// concurrent change.
type PostgresWishlistRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresWishlistRepository creates a new PostgresWishlistRepository
// using the provided *sql.DB.
func NewPostgresWishlistRepository(db *sql.DB) *PostgresWishlistRepository {
	return &PostgresWishlistRepository{DB: db}
}

// Create inserts the wishlist and fills in its timestamps.
// Returns ErrDuplicateToken if the share token collides with an existing one.
func (r *PostgresWishlistRepository) Create(ctx context.Context, w *models.Wishlist) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO wishlists (id, owner_id, name, description, share_token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, w.ID, w.OwnerID, w.Name, w.Description, w.ShareToken).Scan(&w.CreatedAt, &w.UpdatedAt)
	if isPQError(err, uniqueViolation) {
		return ErrDuplicateToken
	}
	if err != nil {
		return fmt.Errorf("Create wishlist: %w", err)
	}
	return nil
}

// ListByOwner returns all wishlists owned by the given user, newest first,
// with item and claimed counts computed from the live item and claim rows.
func (r *PostgresWishlistRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.WishlistSummary, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT w.id, w.owner_id, w.name, COALESCE(w.description, ''), w.share_token,
			w.created_at, w.updated_at, COUNT(i.id), COUNT(c.id)
		FROM wishlists w
		LEFT JOIN items i ON i.wishlist_id = w.id
		LEFT JOIN claims c ON c.item_id = i.id
		WHERE w.owner_id = $1
		GROUP BY w.id
		ORDER BY w.created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListByOwner: %w", err)
	}
	defer rows.Close()

	summaries := []models.WishlistSummary{}
	for rows.Next() {
		var s models.WishlistSummary
		if err := rows.Scan(
			&s.ID, &s.OwnerID, &s.Name, &s.Description, &s.ShareToken,
			&s.CreatedAt, &s.UpdatedAt, &s.ItemCount, &s.ClaimedCount,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// GetByIDForOwner fetches a single wishlist by id, scoped to the given owner.
// A wrong id and a wrong owner both return ErrNotFound; the caller cannot
// tell whether the wishlist exists.
func (r *PostgresWishlistRepository) GetByIDForOwner(ctx context.Context, id, ownerID string) (*models.Wishlist, error) {
	return r.getOne(ctx, `
		SELECT id, owner_id, name, COALESCE(description, ''), share_token, created_at, updated_at
		FROM wishlists WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
}

// GetByToken resolves a wishlist by its share token. Exact match only.
// Returns ErrNotFound when no wishlist carries the token.
func (r *PostgresWishlistRepository) GetByToken(ctx context.Context, token string) (*models.Wishlist, error) {
	return r.getOne(ctx, `
		SELECT id, owner_id, name, COALESCE(description, ''), share_token, created_at, updated_at
		FROM wishlists WHERE share_token = $1
	`, token)
}

func (r *PostgresWishlistRepository) getOne(ctx context.Context, query string, args ...any) (*models.Wishlist, error) {
	var w models.Wishlist
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&w.ID, &w.OwnerID, &w.Name, &w.Description, &w.ShareToken, &w.CreatedAt, &w.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return &w, nil
}

// Update applies a partial update to a wishlist owned by the given user.
// Nil fields keep their current value. The owner scope is part of the UPDATE
// statement itself. Returns ErrNotFound when no row matches.
func (r *PostgresWishlistRepository) Update(ctx context.Context, id, ownerID string, name, description *string) (*models.Wishlist, error) {
	var w models.Wishlist
	err := r.DB.QueryRowContext(ctx, `
		UPDATE wishlists SET
			name = COALESCE($3, name),
			description = COALESCE($4, description),
			updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, name, COALESCE(description, ''), share_token, created_at, updated_at
	`, id, ownerID, name, description).Scan(
		&w.ID, &w.OwnerID, &w.Name, &w.Description, &w.ShareToken, &w.CreatedAt, &w.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Update wishlist: %w", err)
	}
	return &w, nil
}

// Delete removes a wishlist owned by the given user. Items and claims go
// with it via referential cascade. Returns ErrNotFound when no row matches.
func (r *PostgresWishlistRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM wishlists WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("Delete wishlist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete wishlist rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
