// Package usecase orchestrates playback token issuance and per-request
// validation at the content access gateway.
package usecase

import (
	"context"

	"github.com/google/uuid"

	playbackDomain "github.com/prepdeck/contentguard/internal/playback/domain"
)

// IssueInput carries everything needed to mint a playback token.
type IssueInput struct {
	UserID            uuid.UUID
	ContentID         uuid.UUID
	DeviceFingerprint string
}

// PlaybackUseCase issues, validates, and revokes playback tokens. Issuance
// always consults the entitlement oracle; validation happens on every media
// request, not just the first.
type PlaybackUseCase interface {
	// Issue mints a single-content playback token after a successful
	// entitlement check. Denials surface as *entitlement.AccessDeniedError.
	Issue(ctx context.Context, input *IssueInput) (*playbackDomain.IssueOutput, error)

	// Validate checks a plain token against a content ID. Returns the stored
	// token on success and ErrTokenInvalid for unknown, expired, or
	// cross-content tokens. The reason is never distinguished for callers.
	Validate(ctx context.Context, plainToken string, contentID uuid.UUID) (*playbackDomain.Token, error)

	// Revoke invalidates a token before its natural expiry.
	Revoke(ctx context.Context, plainToken string) error
}

// TokenRepository persists playback tokens keyed by their hash.
type TokenRepository interface {
	Create(ctx context.Context, token *playbackDomain.Token) error
	GetByHash(ctx context.Context, tokenHash string) (*playbackDomain.Token, error)
	Delete(ctx context.Context, tokenHash string) error
}
