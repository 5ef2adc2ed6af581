package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a row is absent or the requesting
	// identity is not permitted to see it. The two cases are deliberately
	// indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyClaimed is returned when a claim insert loses to an
	// existing claim on the same item.
	ErrAlreadyClaimed = errors.New("item already claimed")

	// ErrDuplicateToken is returned when a wishlist insert collides on
	// the share token.
	ErrDuplicateToken = errors.New("share token already in use")
)

const (
	uniqueViolation     = pq.ErrorCode("23505")
	foreignKeyViolation = pq.ErrorCode("23503")
)

// isPQError reports whether err is a PostgreSQL error with the given code.
func isPQError(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
