package service

import "errors"

var (
	// ErrNotFound means the target entity is absent or the requesting
	// identity may not see it. Callers must not be able to tell which.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyClaimed means the item already carries an active claim.
	ErrAlreadyClaimed = errors.New("item is already claimed")

	// ErrSelfClaim means a wishlist owner tried to claim their own item.
	ErrSelfClaim = errors.New("cannot claim an item on your own wishlist")

	// ErrValidation wraps structural input problems. Use errors.Is to
	// detect it; the wrapped message describes the field.
	ErrValidation = errors.New("validation failed")

	// ErrTokenCollision means share token generation collided twice in a
	// row, which should never happen in practice.
	ErrTokenCollision = errors.New("share token collision")
)
