// Package service provides business logic for wishlists, items, and claims,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/okarpov/wishlink/internal/models"
	"github.com/okarpov/wishlink/internal/repository"
)

// maxNameLength bounds wishlist and item names.
const maxNameLength = 255

// WishlistRepository defines the persistence operations needed by the
// WishlistService for wishlists.
type WishlistRepository interface {
	// Create inserts the wishlist. Returns repository.ErrDuplicateToken
	// on a share token collision.
	Create(ctx context.Context, w *models.Wishlist) error
	// ListByOwner returns the owner's wishlists with derived counts.
	ListByOwner(ctx context.Context, ownerID string) ([]models.WishlistSummary, error)
	// GetByIDForOwner fetches a wishlist scoped by id and owner.
	GetByIDForOwner(ctx context.Context, id, ownerID string) (*models.Wishlist, error)
	// GetByToken resolves a wishlist by its share token.
	GetByToken(ctx context.Context, token string) (*models.Wishlist, error)
	// Update applies a partial update scoped by owner. Nil keeps a field.
	Update(ctx context.Context, id, ownerID string, name, description *string) (*models.Wishlist, error)
	// Delete removes a wishlist scoped by owner, cascading to its items.
	Delete(ctx context.Context, id, ownerID string) error
}

// ItemRepository defines the persistence operations needed by the
// WishlistService for items.
type ItemRepository interface {
	// Create inserts an item iff the target wishlist is owned by ownerID.
	Create(ctx context.Context, item *models.Item, ownerID string) error
	// ListByWishlist returns the wishlist's items with claim state.
	ListByWishlist(ctx context.Context, wishlistID string) ([]models.ItemWithClaim, error)
	// Update applies a partial update scoped by the parent's owner.
	Update(ctx context.Context, id, ownerID string, name, url, description, price, imageURL *string) (*models.Item, error)
	// Delete removes an item scoped by the parent's owner.
	Delete(ctx context.Context, id, ownerID string) error
}

// WishlistService implements wishlist and item orchestration: structural
// validation, share token generation, and delegation to the repositories,
// which carry the ownership scoping.
type WishlistService struct {
	lists WishlistRepository
	items ItemRepository
}

// NewWishlistService constructs a WishlistService with the provided
// repositories.
func NewWishlistService(lists WishlistRepository, items ItemRepository) *WishlistService {
	return &WishlistService{lists: lists, items: items}
}

// CreateWishlistInput carries the fields a client may set at creation.
type CreateWishlistInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateWishlistInput is the allow-list of wishlist fields a partial update
// may touch. Nil fields are left unchanged.
type UpdateWishlistInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// List returns the user's wishlists, newest first, with live counts.
func (s *WishlistService) List(ctx context.Context, ownerID string) ([]models.WishlistSummary, error) {
	return s.lists.ListByOwner(ctx, ownerID)
}

// Get returns a wishlist with full item and claim state, scoped to its
// owner. A wishlist owned by someone else is indistinguishable from a
// missing one.
func (s *WishlistService) Get(ctx context.Context, ownerID, id string) (*models.WishlistDetail, error) {
	w, err := s.lists.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return s.detail(ctx, w)
}

// GetShared resolves a share token to a wishlist with full item and claim
// state. No authentication and no redaction: anyone holding the link sees
// claimant identities.
func (s *WishlistService) GetShared(ctx context.Context, token string) (*models.WishlistDetail, error) {
	w, err := s.lists.GetByToken(ctx, token)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return s.detail(ctx, w)
}

func (s *WishlistService) detail(ctx context.Context, w *models.Wishlist) (*models.WishlistDetail, error) {
	items, err := s.items.ListByWishlist(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	return &models.WishlistDetail{Wishlist: *w, Items: items}, nil
}

// Create makes a new wishlist for the owner with a freshly generated share
// token. On the astronomically unlikely token collision it regenerates and
// retries once, then gives up with ErrTokenCollision.
func (s *WishlistService) Create(ctx context.Context, ownerID string, in CreateWishlistInput) (*models.Wishlist, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < 2; attempt++ {
		token, err := newShareToken()
		if err != nil {
			return nil, err
		}
		w := &models.Wishlist{
			ID:          uuid.NewString(),
			OwnerID:     ownerID,
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			ShareToken:  token,
		}
		err = s.lists.Create(ctx, w)
		if errors.Is(err, repository.ErrDuplicateToken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return w, nil
	}
	return nil, ErrTokenCollision
}

// Update applies a partial update to the owner's wishlist. Only the fields
// present in the input may change; the share token never does.
func (s *WishlistService) Update(ctx context.Context, ownerID, id string, in UpdateWishlistInput) (*models.Wishlist, error) {
	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return nil, err
		}
	}
	w, err := s.lists.Update(ctx, id, ownerID, in.Name, in.Description)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return w, nil
}

// Delete removes the owner's wishlist and, by cascade, all its items and
// their claims.
func (s *WishlistService) Delete(ctx context.Context, ownerID, id string) error {
	return mapRepoError(s.lists.Delete(ctx, id, ownerID))
}

// CreateItemInput carries the fields a client may set when adding an item.
type CreateItemInput struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"imageUrl"`
}

// UpdateItemInput is the allow-list of item fields a partial update may
// touch. Nil fields are left unchanged; WishlistID is not listed and so can
// never move an item between wishlists.
type UpdateItemInput struct {
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	ImageURL    *string `json:"imageUrl"`
}

// CreateItem adds an item to the given wishlist on behalf of its owner.
func (s *WishlistService) CreateItem(ctx context.Context, ownerID, wishlistID string, in CreateItemInput) (*models.Item, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if err := validateURL("url", in.URL); err != nil {
		return nil, err
	}
	if err := validateURL("imageUrl", in.ImageURL); err != nil {
		return nil, err
	}

	item := &models.Item{
		ID:          uuid.NewString(),
		WishlistID:  wishlistID,
		Name:        strings.TrimSpace(in.Name),
		URL:         in.URL,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
	}
	if err := s.items.Create(ctx, item, ownerID); err != nil {
		return nil, mapRepoError(err)
	}
	return item, nil
}

// UpdateItem applies a partial update to an item on behalf of the parent
// wishlist's owner.
func (s *WishlistService) UpdateItem(ctx context.Context, ownerID, id string, in UpdateItemInput) (*models.Item, error) {
	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return nil, err
		}
	}
	if in.URL != nil {
		if err := validateURL("url", *in.URL); err != nil {
			return nil, err
		}
	}
	if in.ImageURL != nil {
		if err := validateURL("imageUrl", *in.ImageURL); err != nil {
			return nil, err
		}
	}
	item, err := s.items.Update(ctx, id, ownerID, in.Name, in.URL, in.Description, in.Price, in.ImageURL)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return item, nil
}

// DeleteItem removes an item on behalf of the parent wishlist's owner. A
// claim on the item, if any, is removed with it.
func (s *WishlistService) DeleteItem(ctx context.Context, ownerID, id string) error {
	return mapRepoError(s.items.Delete(ctx, id, ownerID))
}

// validateName enforces the name-required and max-length constraints.
func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrValidation, maxNameLength)
	}
	return nil
}

// validateURL accepts empty values and otherwise requires an absolute
// http(s) URL.
func validateURL(field, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be a valid http(s) URL", ErrValidation, field)
	}
	return nil
}

// mapRepoError translates store-level sentinels into service-level ones so
// handlers never depend on the repository package.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrAlreadyClaimed):
		return ErrAlreadyClaimed
	default:
		return err
	}
}
