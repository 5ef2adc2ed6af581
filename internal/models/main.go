// Package models defines the core data structures for users, wishlists,
// items, and claims.
package models

import "time"

// User represents an application user as recorded on sign-in.
type User struct {
	// ID is the unique identifier for the user, assigned by the
	// external authentication provider.
	ID string `json:"id"`
	// Email is the user's email address, if the provider shared it.
	Email string `json:"email,omitempty"`
	// FirstName is the user's given name, if known.
	FirstName string `json:"firstName,omitempty"`
	// LastName is the user's family name, if known.
	LastName string `json:"lastName,omitempty"`
	// ProfileImageURL points to the user's avatar, if known.
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
	// CreatedAt is when the user record was first created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is when the user record was last upserted.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Wishlist is a named collection of items owned by one user.
type Wishlist struct {
	// ID is the unique identifier for the wishlist.
	ID string `json:"id"`
	// OwnerID identifies the user who created the wishlist and is the
	// sole authority over its mutation.
	OwnerID string `json:"ownerUserId"`
	// Name is the display name of the wishlist.
	Name string `json:"name"`
	// Description holds optional free-text notes about the wishlist.
	Description string `json:"description,omitempty"`
	// ShareToken is the opaque credential granting unauthenticated read
	// access. Generated once at creation, immutable thereafter.
	ShareToken string `json:"shareToken"`
	// CreatedAt is when the wishlist was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is when the wishlist was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Item is a single desired product entry within a wishlist.
type Item struct {
	// ID is the unique identifier for the item.
	ID string `json:"id"`
	// WishlistID identifies the wishlist the item belongs to.
	// Immutable after creation.
	WishlistID string `json:"wishlistId"`
	// Name is the display name of the item.
	Name string `json:"name"`
	// URL optionally links to the product page.
	URL string `json:"url,omitempty"`
	// Description holds optional free-text notes about the item.
	Description string `json:"description,omitempty"`
	// Price is an optional display price, stored as entered.
	Price string `json:"price,omitempty"`
	// ImageURL optionally points to a product image.
	ImageURL string `json:"imageUrl,omitempty"`
	// CreatedAt is when the item was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is when the item was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Claim marks an item as already being obtained by a specific non-owner
// user. At most one claim exists per item at any time.
type Claim struct {
	// ID is the unique identifier for the claim.
	ID string `json:"id"`
	// ItemID identifies the claimed item. Unique across all claims.
	ItemID string `json:"itemId"`
	// ClaimerID identifies the user who made the claim.
	ClaimerID string `json:"claimerUserId"`
	// ClaimedAt is when the claim was made.
	ClaimedAt time.Time `json:"claimedAt"`
}

// ItemWithClaim pairs an item with its active claim, if any.
type ItemWithClaim struct {
	Item
	// Claim is nil while the item is unclaimed.
	Claim *Claim `json:"claim,omitempty"`
}

// WishlistSummary is a wishlist with derived counts, computed at read time.
type WishlistSummary struct {
	Wishlist
	// ItemCount is the live number of items in the wishlist.
	ItemCount int `json:"itemCount"`
	// ClaimedCount is the live number of items with an active claim.
	ClaimedCount int `json:"claimedCount"`
}

// WishlistDetail is a wishlist with its full item and claim state,
// as rendered to the owner or to a share-link visitor.
type WishlistDetail struct {
	Wishlist
	// Items lists the wishlist's items with their claim state.
	Items []ItemWithClaim `json:"items"`
}
