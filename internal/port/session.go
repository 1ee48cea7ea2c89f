package port

import "context"

// SessionStore associates opaque session tokens with authenticated customer
// ids. Token lifetime is owned by the implementation.
type SessionStore interface {
	// Get returns the customer id for a token, or ErrNotFound.
	Get(ctx context.Context, token string) (int64, error)
	Set(ctx context.Context, token string, customerID int64) error
	Delete(ctx context.Context, token string) error
}
