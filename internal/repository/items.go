package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/okarpov/wishlink/internal/models"
)

// PostgresItemRepository implements item persistence against a PostgreSQL
// database. Mutations are scoped to the parent wishlist's owner inside the
// statement, so ownership cannot change between check and write.
type PostgresItemRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresItemRepository creates a new PostgresItemRepository using the
// provided *sql.DB.
func NewPostgresItemRepository(db *sql.DB) *PostgresItemRepository {
	return &PostgresItemRepository{DB: db}
}

// Create inserts an item into the given wishlist, but only if that wishlist
// is owned by ownerID. The insert selects from wishlists so the ownership
// check and the insert are one statement. Returns ErrNotFound when the
// wishlist is absent or owned by someone else.
func (r *PostgresItemRepository) Create(ctx context.Context, item *models.Item, ownerID string) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO items (id, wishlist_id, name, url, description, price, image_url)
		SELECT $1, w.id, $3, $4, $5, $6, $7
		FROM wishlists w WHERE w.id = $2 AND w.owner_id = $8
		RETURNING created_at, updated_at
	`, item.ID, item.WishlistID, item.Name, item.URL, item.Description,
		item.Price, item.ImageURL, ownerID).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("Create item: %w", err)
	}
	return nil
}

// ListByWishlist returns the wishlist's items in creation order, each paired
// with its active claim when one exists.
func (r *PostgresItemRepository) ListByWishlist(ctx context.Context, wishlistID string) ([]models.ItemWithClaim, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT i.id, i.wishlist_id, i.name, COALESCE(i.url, ''), COALESCE(i.description, ''),
			COALESCE(i.price, ''), COALESCE(i.image_url, ''), i.created_at, i.updated_at,
			c.id, c.claimer_id, c.claimed_at
		FROM items i
		LEFT JOIN claims c ON c.item_id = i.id
		WHERE i.wishlist_id = $1
		ORDER BY i.created_at
	`, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("ListByWishlist: %w", err)
	}
	defer rows.Close()

	items := []models.ItemWithClaim{}
	for rows.Next() {
		var it models.ItemWithClaim
		var claimID, claimerID sql.NullString
		var claimedAt sql.NullTime
		if err := rows.Scan(
			&it.ID, &it.WishlistID, &it.Name, &it.URL, &it.Description,
			&it.Price, &it.ImageURL, &it.CreatedAt, &it.UpdatedAt,
			&claimID, &claimerID, &claimedAt,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if claimID.Valid {
			it.Claim = &models.Claim{
				ID:        claimID.String,
				ItemID:    it.ID,
				ClaimerID: claimerID.String,
				ClaimedAt: claimedAt.Time,
			}
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update applies a partial update to an item whose parent wishlist is owned
// by ownerID. Nil fields keep their current value. Returns ErrNotFound when
// the item is absent or the parent wishlist belongs to someone else.
func (r *PostgresItemRepository) Update(ctx context.Context, id, ownerID string, name, url, description, price, imageURL *string) (*models.Item, error) {
	var it models.Item
	err := r.DB.QueryRowContext(ctx, `
		UPDATE items SET
			name = COALESCE($3, name),
			url = COALESCE($4, url),
			description = COALESCE($5, description),
			price = COALESCE($6, price),
			image_url = COALESCE($7, image_url),
			updated_at = now()
		WHERE id = $1 AND wishlist_id IN (SELECT id FROM wishlists WHERE owner_id = $2)
		RETURNING id, wishlist_id, name, COALESCE(url, ''), COALESCE(description, ''),
			COALESCE(price, ''), COALESCE(image_url, ''), created_at, updated_at
	`, id, ownerID, name, url, description, price, imageURL).Scan(
		&it.ID, &it.WishlistID, &it.Name, &it.URL, &it.Description,
		&it.Price, &it.ImageURL, &it.CreatedAt, &it.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Update item: %w", err)
	}
	return &it, nil
}

// Delete removes an item whose parent wishlist is owned by ownerID. Its
// claim, if any, goes with it via referential cascade. Returns ErrNotFound
// when no row matches.
func (r *PostgresItemRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM items
		WHERE id = $1 AND wishlist_id IN (SELECT id FROM wishlists WHERE owner_id = $2)
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("Delete item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete item rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
