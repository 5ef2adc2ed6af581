// Package repository provides persistence implementations for wishlists,
// items, claims, and users using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/okarpov/wishlink/internal/models"
)

// PostgresUserRepository implements user persistence against PostgreSQL.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository using the
// provided *sql.DB. db must be a valid connection to a PostgreSQL instance.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// Upsert inserts the user record or, if a row with the same id exists,
// refreshes its profile fields. The authentication provider calls this on
// every sign-in, so the row always reflects the latest profile.
func (r *PostgresUserRepository) Upsert(ctx context.Context, user models.User) (*models.User, error) {
	var out models.User
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			profile_image_url = EXCLUDED.profile_image_url,
			updated_at = now()
		RETURNING id, COALESCE(email, ''), COALESCE(first_name, ''), COALESCE(last_name, ''),
			COALESCE(profile_image_url, ''), created_at, updated_at
	`, user.ID, user.Email, user.FirstName, user.LastName, user.ProfileImageURL).Scan(
		&out.ID, &out.Email, &out.FirstName, &out.LastName,
		&out.ProfileImageURL, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("Upsert user: %w", err)
	}
	return &out, nil
}

// GetByID fetches a single user by id.
// Returns ErrNotFound if no such user exists.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var out models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, COALESCE(email, ''), COALESCE(first_name, ''), COALESCE(last_name, ''),
			COALESCE(profile_image_url, ''), created_at, updated_at
		FROM users WHERE id = $1
	`, id).Scan(
		&out.ID, &out.Email, &out.FirstName, &out.LastName,
		&out.ProfileImageURL, &out.CreatedAt, &out.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID user: %w", err)
	}
	return &out, nil
}
