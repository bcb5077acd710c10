// Package usecase implements the entitlement oracle: the single authority
// answering whether a user may access a content item, and why not.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	entitlementDomain "github.com/prepdeck/contentguard/internal/entitlement/domain"
	"github.com/prepdeck/contentguard/internal/identity"
)

// Oracle answers "can user U access content C". Every protected path goes
// through it; client-side guards are deterrence only and the oracle holds
// even when all of them are disabled.
type Oracle interface {
	// CanAccess returns the entitlement decision for a user and content item.
	// Denials are expressed in the Decision, not as errors; errors are
	// reserved for infrastructure failures.
	CanAccess(ctx context.Context, userID, contentID uuid.UUID) (entitlementDomain.Decision, error)
}

// ContentCatalog exposes the minimum content metadata the oracle needs.
type ContentCatalog interface {
	// IsPremium reports whether the content requires an active subscription.
	// Returns an error wrapping errors.ErrNotFound for unknown content.
	IsPremium(ctx context.Context, contentID uuid.UUID) (bool, error)
}

// SubscriptionRepository reads the billing state maintained by the payment
// system (external collaborator; this service only reads it).
type SubscriptionRepository interface {
	GetStatus(ctx context.Context, userID uuid.UUID) (identity.SubscriptionStatus, error)
}

// DeviceSessionRepository tracks which devices a user is actively watching
// from, enforcing the concurrent-device limit.
type DeviceSessionRepository interface {
	// Touch records activity for a (user, device) pair.
	Touch(ctx context.Context, userID uuid.UUID, fingerprint string, seenAt time.Time) error

	// CountActive counts distinct devices seen since the given instant.
	CountActive(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}
