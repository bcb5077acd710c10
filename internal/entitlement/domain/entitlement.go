// Package domain defines the entitlement decision model: the boolean-or-reason
// answer to "may user U access content C".
package domain

import (
	"fmt"

	"github.com/prepdeck/contentguard/internal/errors"
)

// DenialReason explains why access was denied. Reasons are preserved all the
// way to the client because they drive distinct UX paths: upsell messaging
// for missing subscriptions, "log out elsewhere" guidance for device limits.
type DenialReason string

const (
	ReasonSubscriptionRequired DenialReason = "subscription_required"
	ReasonDeviceLimitExceeded  DenialReason = "device_limit_exceeded"
	ReasonContentNotFound      DenialReason = "content_not_found"
)

// Decision is the outcome of an entitlement check.
type Decision struct {
	Allowed bool
	Reason  DenialReason
}

// Allow is the positive decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny is a negative decision carrying its reason.
func Deny(reason DenialReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// AccessDeniedError is returned when an entitlement check fails. It wraps
// the standard sentinel matching its reason so generic handling still works,
// while the reason survives for the response body.
type AccessDeniedError struct {
	Reason DenialReason
}

// Error implements the error interface.
func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied: %s", e.Reason)
}

// Unwrap maps the denial to the matching standard sentinel.
func (e *AccessDeniedError) Unwrap() error {
	if e.Reason == ReasonContentNotFound {
		return errors.ErrNotFound
	}
	return errors.ErrForbidden
}

// NewAccessDeniedError builds an AccessDeniedError for a denial reason.
func NewAccessDeniedError(reason DenialReason) error {
	return &AccessDeniedError{Reason: reason}
}
