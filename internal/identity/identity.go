// Package identity integrates the external authentication/session provider.
//
// The platform's session system is not part of this service; it is consumed
// through the Provider interface as an opaque identity source. Handlers only
// ever see the resolved User.
package identity

import (
	"context"

	"github.com/google/uuid"
)

// SubscriptionStatus is the billing state relevant to entitlement decisions.
type SubscriptionStatus string

const (
	SubscriptionActive SubscriptionStatus = "ACTIVE"
	SubscriptionFree   SubscriptionStatus = "FREE"
)

// Role describes what a user may do beyond viewing.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
)

// User is the identity attached to an authenticated request.
type User struct {
	ID           uuid.UUID
	Email        string
	Role         Role
	Subscription SubscriptionStatus
}

// Provider resolves a session token into a user. Implemented by the
// platform's session service; a static fake is used in tests.
type Provider interface {
	// CurrentUser resolves the bearer session token. Implementations return
	// an error wrapping errors.ErrUnauthorized for unknown or expired
	// sessions.
	CurrentUser(ctx context.Context, sessionToken string) (*User, error)
}

// userKey is a context key type for storing the authenticated user.
type userKey struct{}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext retrieves the authenticated user stored by the middleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey{}).(*User)
	return user, ok
}
