package usecase

import (
	"context"
	"crypto/sha256"
	"log/slog"
	"time"

	"github.com/google/uuid"

	contentDomain "github.com/prepdeck/contentguard/internal/content/domain"
	cryptoService "github.com/prepdeck/contentguard/internal/crypto/service"
	entitlementDomain "github.com/prepdeck/contentguard/internal/entitlement/domain"
	entitlementUseCase "github.com/prepdeck/contentguard/internal/entitlement/usecase"
	apperrors "github.com/prepdeck/contentguard/internal/errors"
	playbackDomain "github.com/prepdeck/contentguard/internal/playback/domain"
	playbackUseCase "github.com/prepdeck/contentguard/internal/playback/usecase"
)

// contentUseCase implements ContentUseCase.
type contentUseCase struct {
	contents ContentRepository
	sealer   cryptoService.Sealer
	oracle   entitlementUseCase.Oracle
	playback playbackUseCase.PlaybackUseCase
	logger   *slog.Logger
}

// Save stores a content item. Premium bodies are envelope-encrypted and the
// plaintext is never persisted; free bodies are stored as-is. Both carry the
// plaintext SHA-256 hash.
func (u *contentUseCase) Save(ctx context.Context, input *SaveInput) (*contentDomain.Content, error) {
	if input.Kind != contentDomain.KindText && input.Kind != contentDomain.KindVideo {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unknown content kind")
	}

	now := time.Now().UTC()
	hash := sha256.Sum256(input.Body)

	content := &contentDomain.Content{
		ID:          input.ContentID,
		Kind:        input.Kind,
		Premium:     input.Premium,
		ContentHash: hash[:],
		MediaPath:   input.MediaPath,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if input.Premium {
		envelope, err := u.sealer.Seal(input.Body)
		if err != nil {
			return nil, err
		}
		content.Envelope = envelope
	} else {
		content.Body = input.Body
	}

	if err := u.contents.Upsert(ctx, content); err != nil {
		return nil, err
	}

	u.logger.Info("content saved",
		slog.String("content_id", content.ID.String()),
		slog.String("kind", string(content.Kind)),
		slog.Bool("premium", content.Premium),
	)

	return content, nil
}

// GetText returns the plaintext of a text content item after an entitlement
// check. The returned access token is an opaque audit correlation ID, not a
// credential; it ties this delivery to its audit trail.
func (u *contentUseCase) GetText(ctx context.Context, userID, contentID uuid.UUID) (*contentDomain.TextResult, error) {
	decision, err := u.oracle.CanAccess(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, entitlementDomain.NewAccessDeniedError(decision.Reason)
	}

	content, err := u.contents.Get(ctx, contentID)
	if err != nil {
		return nil, err
	}

	if content.Kind != contentDomain.KindText {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "content is not a text item")
	}

	plaintext := content.Body
	if content.Premium {
		plaintext, err = u.sealer.Open(content.Envelope)
		if err != nil {
			u.logger.Error("content decryption failed",
				slog.String("content_id", contentID.String()),
				slog.Any("error", err),
			)
			return nil, err
		}
	}

	return &contentDomain.TextResult{
		Content:     content,
		Plaintext:   plaintext,
		AccessToken: uuid.Must(uuid.NewV7()).String(),
	}, nil
}

// RequestPlayback issues a playback token for a video content item. The
// entitlement check happens inside playback issuance.
func (u *contentUseCase) RequestPlayback(ctx context.Context, userID, contentID uuid.UUID, fingerprint string) (*playbackDomain.IssueOutput, error) {
	content, err := u.contents.Get(ctx, contentID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, entitlementDomain.NewAccessDeniedError(entitlementDomain.ReasonContentNotFound)
		}
		return nil, err
	}

	if content.Kind != contentDomain.KindVideo {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "content is not a video item")
	}

	return u.playback.Issue(ctx, &playbackUseCase.IssueInput{
		UserID:            userID,
		ContentID:         contentID,
		DeviceFingerprint: fingerprint,
	})
}

// ResolveMedia validates the playback token and returns the content for
// streaming. Token validation runs on every call; a served byte range is
// never proof the next one is authorized.
func (u *contentUseCase) ResolveMedia(ctx context.Context, plainToken string, contentID uuid.UUID) (*contentDomain.Content, error) {
	if _, err := u.playback.Validate(ctx, plainToken, contentID); err != nil {
		return nil, err
	}

	content, err := u.contents.Get(ctx, contentID)
	if err != nil {
		return nil, err
	}

	if content.Kind != contentDomain.KindVideo || content.MediaPath == "" {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "no media for content")
	}

	return content, nil
}

// NewContentUseCase creates a new ContentUseCase.
func NewContentUseCase(
	contents ContentRepository,
	sealer cryptoService.Sealer,
	oracle entitlementUseCase.Oracle,
	playback playbackUseCase.PlaybackUseCase,
	logger *slog.Logger,
) ContentUseCase {
	return &contentUseCase{
		contents: contents,
		sealer:   sealer,
		oracle:   oracle,
		playback: playback,
		logger:   logger,
	}
}
