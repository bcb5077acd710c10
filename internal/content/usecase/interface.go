// Package usecase implements the content access gateway: the single path
// through which protected lesson content is saved, read, and streamed.
package usecase

import (
	"context"

	"github.com/google/uuid"

	contentDomain "github.com/prepdeck/contentguard/internal/content/domain"
	playbackDomain "github.com/prepdeck/contentguard/internal/playback/domain"
)

// SaveInput carries an editor save request.
type SaveInput struct {
	ContentID uuid.UUID
	Kind      contentDomain.Kind
	Premium   bool
	Body      []byte
	MediaPath string
}

// ContentUseCase coordinates entitlement checks, envelope encryption, and
// playback token issuance around the content repository.
type ContentUseCase interface {
	// Save stores a content item, envelope-encrypting the body when premium.
	// Saving an existing ID creates the next version.
	Save(ctx context.Context, input *SaveInput) (*contentDomain.Content, error)

	// GetText runs the entitlement check and returns the plaintext of a text
	// content item, decrypting when premium. Denials surface as
	// *entitlement.AccessDeniedError.
	GetText(ctx context.Context, userID, contentID uuid.UUID) (*contentDomain.TextResult, error)

	// RequestPlayback issues a playback token for a video content item.
	RequestPlayback(ctx context.Context, userID, contentID uuid.UUID, fingerprint string) (*playbackDomain.IssueOutput, error)

	// ResolveMedia validates a playback token for the content and returns
	// the content item for streaming. Called on every media request,
	// byte-range requests included.
	ResolveMedia(ctx context.Context, plainToken string, contentID uuid.UUID) (*contentDomain.Content, error)
}

// ContentRepository persists content items.
type ContentRepository interface {
	Upsert(ctx context.Context, content *contentDomain.Content) error
	Get(ctx context.Context, contentID uuid.UUID) (*contentDomain.Content, error)
	IsPremium(ctx context.Context, contentID uuid.UUID) (bool, error)
}
