package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/prepdeck/contentguard/internal/config"
	"github.com/prepdeck/contentguard/internal/database"
	entitlementDomain "github.com/prepdeck/contentguard/internal/entitlement/domain"
	entitlementUseCase "github.com/prepdeck/contentguard/internal/entitlement/usecase"
	apperrors "github.com/prepdeck/contentguard/internal/errors"
	playbackDomain "github.com/prepdeck/contentguard/internal/playback/domain"
	playbackService "github.com/prepdeck/contentguard/internal/playback/service"
)

// playbackUseCase implements PlaybackUseCase.
type playbackUseCase struct {
	cfg          *config.Config
	txManager    database.TxManager
	oracle       entitlementUseCase.Oracle
	devices      entitlementUseCase.DeviceSessionRepository
	tokens       TokenRepository
	tokenService playbackService.TokenService
	logger       *slog.Logger
}

// Issue registers the requesting device, runs the entitlement check, and
// mints a token scoped to exactly one content item. The device is touched
// before the check so a brand-new device counts toward the limit it might
// itself exceed.
func (p *playbackUseCase) Issue(ctx context.Context, input *IssueInput) (*playbackDomain.IssueOutput, error) {
	now := time.Now().UTC()

	// The touch and the entitlement count must see each other's rows, so
	// they run in one transaction; otherwise two concurrent issues from new
	// devices could both slip under the device limit.
	var decision entitlementDomain.Decision
	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := p.devices.Touch(ctx, input.UserID, input.DeviceFingerprint, now); err != nil {
			return err
		}

		txDecision, err := p.oracle.CanAccess(ctx, input.UserID, input.ContentID)
		if err != nil {
			return err
		}
		decision = txDecision
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		p.logger.Info("playback denied",
			slog.String("user_id", input.UserID.String()),
			slog.String("content_id", input.ContentID.String()),
			slog.String("reason", string(decision.Reason)),
		)
		return nil, entitlementDomain.NewAccessDeniedError(decision.Reason)
	}

	plainToken, tokenHash, err := p.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	token := &playbackDomain.Token{
		ID:                uuid.Must(uuid.NewV7()),
		TokenHash:         tokenHash,
		UserID:            input.UserID,
		ContentID:         input.ContentID,
		DeviceFingerprint: input.DeviceFingerprint,
		IssuedAt:          now,
		ExpiresAt:         now.Add(p.cfg.PlaybackTokenTTL),
	}

	if err := p.tokens.Create(ctx, token); err != nil {
		return nil, err
	}

	p.logger.Info("playback token issued",
		slog.String("user_id", input.UserID.String()),
		slog.String("content_id", input.ContentID.String()),
		slog.Time("expires_at", token.ExpiresAt),
	)

	return &playbackDomain.IssueOutput{
		PlainToken:  plainToken,
		PlaybackURL: fmt.Sprintf("/v1/media/%s?token=%s", input.ContentID, plainToken),
		ExpiresAt:   token.ExpiresAt,
	}, nil
}

// Validate resolves a plain token and checks expiry and content scope.
// All failure modes collapse into ErrTokenInvalid so a caller cannot probe
// which check failed.
func (p *playbackUseCase) Validate(ctx context.Context, plainToken string, contentID uuid.UUID) (*playbackDomain.Token, error) {
	tokenHash := p.tokenService.HashToken(plainToken)

	token, err := p.tokens.GetByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, playbackDomain.ErrTokenNotFound) {
			return nil, playbackDomain.ErrTokenInvalid
		}
		return nil, err
	}

	if token.Expired(time.Now()) {
		return nil, playbackDomain.ErrTokenInvalid
	}

	if token.ContentID != contentID {
		p.logger.Warn("playback token used for wrong content",
			slog.String("user_id", token.UserID.String()),
			slog.String("token_content_id", token.ContentID.String()),
			slog.String("requested_content_id", contentID.String()),
		)
		return nil, playbackDomain.ErrTokenInvalid
	}

	return token, nil
}

// Revoke invalidates a token immediately. Revoking an unknown token is not
// an error.
func (p *playbackUseCase) Revoke(ctx context.Context, plainToken string) error {
	tokenHash := p.tokenService.HashToken(plainToken)

	if err := p.tokens.Delete(ctx, tokenHash); err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}

	return nil
}

// NewPlaybackUseCase creates a new PlaybackUseCase.
func NewPlaybackUseCase(
	cfg *config.Config,
	txManager database.TxManager,
	oracle entitlementUseCase.Oracle,
	devices entitlementUseCase.DeviceSessionRepository,
	tokens TokenRepository,
	tokenService playbackService.TokenService,
	logger *slog.Logger,
) PlaybackUseCase {
	return &playbackUseCase{
		cfg:          cfg,
		txManager:    txManager,
		oracle:       oracle,
		devices:      devices,
		tokens:       tokens,
		tokenService: tokenService,
		logger:       logger,
	}
}
