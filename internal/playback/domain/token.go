// Package domain defines the playback token model: a short-lived credential
// scoped to exactly one content item and one user.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token authorizes one viewing session for one content item.
//
// Only the SHA-256 hash of the plain token is ever stored; the plain token
// is returned to the caller once at issuance. A token is valid for exactly
// one ContentID; validating it against any other content fails.
type Token struct {
	ID                uuid.UUID
	TokenHash         string
	UserID            uuid.UUID
	ContentID         uuid.UUID
	DeviceFingerprint string
	IssuedAt          time.Time
	ExpiresAt         time.Time
}

// Expired reports whether the token is past its expiry at the given instant.
// Comparisons use UTC; there is no implicit renewal, long sessions must
// request a fresh token and re-pass the entitlement check.
func (t *Token) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now.UTC())
}

// IssueOutput is returned to the client after a successful issuance.
type IssueOutput struct {
	PlainToken  string
	PlaybackURL string
	ExpiresAt   time.Time
}
