package service

import (
	"context"
	"errors"
	"testing"

	"github.com/okarpov/wishlink/internal/models"
	"github.com/okarpov/wishlink/internal/repository"
)

type mockWishlistRepo struct {
	CreateFunc          func(ctx context.Context, w *models.Wishlist) error
	ListByOwnerFunc     func(ctx context.Context, ownerID string) ([]models.WishlistSummary, error)
	GetByIDForOwnerFunc func(ctx context.Context, id, ownerID string) (*models.Wishlist, error)
	GetByTokenFunc      func(ctx context.Context, token string) (*models.Wishlist, error)
	UpdateFunc          func(ctx context.Context, id, ownerID string, name, description *string) (*models.Wishlist, error)
	DeleteFunc          func(ctx context.Context, id, ownerID string) error
}

func (m *mockWishlistRepo) Create(ctx context.Context, w *models.Wishlist) error {
	return m.CreateFunc(ctx, w)
}
func (m *mockWishlistRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.WishlistSummary, error) {
	return m.ListByOwnerFunc(ctx, ownerID)
}
func (m *mockWishlistRepo) GetByIDForOwner(ctx context.Context, id, ownerID string) (*models.Wishlist, error) {
	return m.GetByIDForOwnerFunc(ctx, id, ownerID)
}
func (m *mockWishlistRepo) GetByToken(ctx context.Context, token string) (*models.Wishlist, error) {
	return m.GetByTokenFunc(ctx, token)
}
func (m *mockWishlistRepo) Update(ctx context.Context, id, ownerID string, name, description *string) (*models.Wishlist, error) {
	return m.UpdateFunc(ctx, id, ownerID, name, description)
}
func (m *mockWishlistRepo) Delete(ctx context.Context, id, ownerID string) error {
	return m.DeleteFunc(ctx, id, ownerID)
}

type mockItemRepo struct {
	CreateFunc         func(ctx context.Context, item *models.Item, ownerID string) error
	ListByWishlistFunc func(ctx context.Context, wishlistID string) ([]models.ItemWithClaim, error)
	UpdateFunc         func(ctx context.Context, id, ownerID string, name, url, description, price, imageURL *string) (*models.Item, error)
	DeleteFunc         func(ctx context.Context, id, ownerID string) error
}

func (m *mockItemRepo) Create(ctx context.Context, item *models.Item, ownerID string) error {
	return m.CreateFunc(ctx, item, ownerID)
}
func (m *mockItemRepo) ListByWishlist(ctx context.Context, wishlistID string) ([]models.ItemWithClaim, error) {
	return m.ListByWishlistFunc(ctx, wishlistID)
}
func (m *mockItemRepo) Update(ctx context.Context, id, ownerID string, name, url, description, price, imageURL *string) (*models.Item, error) {
	return m.UpdateFunc(ctx, id, ownerID, name, url, description, price, imageURL)
}
func (m *mockItemRepo) Delete(ctx context.Context, id, ownerID string) error {
	return m.DeleteFunc(ctx, id, ownerID)
}

func TestCreateWishlist_GeneratesToken(t *testing.T) {
	var stored *models.Wishlist
	lists := &mockWishlistRepo{
		CreateFunc: func(ctx context.Context, w *models.Wishlist) error {
			stored = w
			return nil
		},
	}
	svc := NewWishlistService(lists, &mockItemRepo{})

	w, err := svc.Create(context.Background(), "owner-1", CreateWishlistInput{Name: "Birthday"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(w.ShareToken) != shareTokenBytes*2 {
		t.Errorf("token length = %d; want %d", len(w.ShareToken), shareTokenBytes*2)
	}
	if w.ID == "" || w.OwnerID != "owner-1" {
		t.Errorf("unexpected wishlist: %+v", w)
	}
	if stored == nil || stored.ShareToken != w.ShareToken {
		t.Error("wishlist was not stored with its token")
	}
}

func TestCreateWishlist_NameRequired(t *testing.T) {
	svc := NewWishlistService(&mockWishlistRepo{}, &mockItemRepo{})

	_, err := svc.Create(context.Background(), "owner-1", CreateWishlistInput{Name: "   "})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Create error = %v; want ErrValidation", err)
	}
}

func TestCreateWishlist_RetriesOnceOnTokenCollision(t *testing.T) {
	var tokens []string
	lists := &mockWishlistRepo{
		CreateFunc: func(ctx context.Context, w *models.Wishlist) error {
			tokens = append(tokens, w.ShareToken)
			if len(tokens) == 1 {
				return repository.ErrDuplicateToken
			}
			return nil
		},
	}
	svc := NewWishlistService(lists, &mockItemRepo{})

	w, err := svc.Create(context.Background(), "owner-1", CreateWishlistInput{Name: "Birthday"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 insert attempts, got %d", len(tokens))
	}
	if tokens[0] == tokens[1] {
		t.Error("expected a fresh token on retry")
	}
	if w.ShareToken != tokens[1] {
		t.Error("returned wishlist must carry the token that won")
	}
}

func TestCreateWishlist_SecondCollisionFails(t *testing.T) {
	lists := &mockWishlistRepo{
		CreateFunc: func(ctx context.Context, w *models.Wishlist) error {
			return repository.ErrDuplicateToken
		},
	}
	svc := NewWishlistService(lists, &mockItemRepo{})

	_, err := svc.Create(context.Background(), "owner-1", CreateWishlistInput{Name: "Birthday"})
	if !errors.Is(err, ErrTokenCollision) {
		t.Errorf("Create error = %v; want ErrTokenCollision", err)
	}
}

func TestGetWishlist_NotFoundPassthrough(t *testing.T) {
	lists := &mockWishlistRepo{
		GetByIDForOwnerFunc: func(ctx context.Context, id, ownerID string) (*models.Wishlist, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewWishlistService(lists, &mockItemRepo{})

	_, err := svc.Get(context.Background(), "intruder", "w1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get error = %v; want ErrNotFound", err)
	}
}

func TestGetShared_IncludesClaimState(t *testing.T) {
	lists := &mockWishlistRepo{
		GetByTokenFunc: func(ctx context.Context, token string) (*models.Wishlist, error) {
			if token != "tok1" {
				t.Errorf("GetByToken received %q; want %q", token, "tok1")
			}
			return &models.Wishlist{ID: "w1", OwnerID: "owner-1", Name: "Birthday", ShareToken: "tok1"}, nil
		},
	}
	items := &mockItemRepo{
		ListByWishlistFunc: func(ctx context.Context, wishlistID string) ([]models.ItemWithClaim, error) {
			return []models.ItemWithClaim{
				{Item: models.Item{ID: "i1", WishlistID: "w1", Name: "Headphones"},
					Claim: &models.Claim{ID: "c1", ItemID: "i1", ClaimerID: "user-2"}},
			}, nil
		},
	}
	svc := NewWishlistService(lists, items)

	detail, err := svc.GetShared(context.Background(), "tok1")
	if err != nil {
		t.Fatalf("GetShared returned error: %v", err)
	}
	if len(detail.Items) != 1 || detail.Items[0].Claim == nil {
		t.Errorf("expected claim state in shared view, got %+v", detail.Items)
	}
}

func TestUpdateWishlist_ValidatesNameWhenPresent(t *testing.T) {
	svc := NewWishlistService(&mockWishlistRepo{}, &mockItemRepo{})

	empty := ""
	_, err := svc.Update(context.Background(), "owner-1", "w1", UpdateWishlistInput{Name: &empty})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Update error = %v; want ErrValidation", err)
	}
}

func TestCreateItem_InvalidURL(t *testing.T) {
	svc := NewWishlistService(&mockWishlistRepo{}, &mockItemRepo{})

	_, err := svc.CreateItem(context.Background(), "owner-1", "w1", CreateItemInput{
		Name: "Headphones",
		URL:  "not a url",
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("CreateItem error = %v; want ErrValidation", err)
	}
}

func TestCreateItem_Success(t *testing.T) {
	items := &mockItemRepo{
		CreateFunc: func(ctx context.Context, item *models.Item, ownerID string) error {
			if ownerID != "owner-1" || item.WishlistID != "w1" {
				t.Errorf("unexpected create: item=%+v owner=%s", item, ownerID)
			}
			return nil
		},
	}
	svc := NewWishlistService(&mockWishlistRepo{}, items)

	item, err := svc.CreateItem(context.Background(), "owner-1", "w1", CreateItemInput{
		Name:  "Headphones",
		URL:   "https://example.com/hp",
		Price: "$99.99",
	})
	if err != nil {
		t.Fatalf("CreateItem returned error: %v", err)
	}
	if item.ID == "" || item.Price != "$99.99" {
		t.Errorf("unexpected item: %+v", item)
	}
}

func TestDeleteItem_NotFoundPassthrough(t *testing.T) {
	items := &mockItemRepo{
		DeleteFunc: func(ctx context.Context, id, ownerID string) error {
			return repository.ErrNotFound
		},
	}
	svc := NewWishlistService(&mockWishlistRepo{}, items)

	err := svc.DeleteItem(context.Background(), "intruder", "i1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteItem error = %v; want ErrNotFound", err)
	}
}
