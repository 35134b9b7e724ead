package auth

import (
	"context"
	"time"
)

// Identity is the request-scoped authenticated identity, derived
// entirely from a verified access token. It is never persisted.
type Identity struct {
	UserID    int64
	Role      Role
	ExpiresAt time.Time
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

type identityContextKey struct{}

// SetIdentityContext stores the authenticated identity on the context
// for downstream consumers.
func SetIdentityContext(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext retrieves the authenticated identity from the
// context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(Identity)
	return identity, ok
}
