package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Identity is an authenticated caller. ID keys both the profile row and the
// storage namespace.
type Identity struct {
	ID        uuid.UUID
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

type Resolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}

// SessionStore remembers revoked tokens until they would have expired anyway.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
