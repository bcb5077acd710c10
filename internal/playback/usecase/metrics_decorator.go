package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/prepdeck/contentguard/internal/metrics"
	playbackDomain "github.com/prepdeck/contentguard/internal/playback/domain"
)

// playbackUseCaseWithMetrics decorates PlaybackUseCase with metrics instrumentation.
type playbackUseCaseWithMetrics struct {
	next    PlaybackUseCase
	metrics metrics.BusinessMetrics
}

// NewPlaybackUseCaseWithMetrics wraps a PlaybackUseCase with metrics recording.
func NewPlaybackUseCaseWithMetrics(useCase PlaybackUseCase, m metrics.BusinessMetrics) PlaybackUseCase {
	return &playbackUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for token issuance, entitlement denials included.
func (p *playbackUseCaseWithMetrics) Issue(
	ctx context.Context,
	input *IssueInput,
) (*playbackDomain.IssueOutput, error) {
	start := time.Now()
	output, err := p.next.Issue(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "playback", "token_issue", status)
	p.metrics.RecordDuration(ctx, "playback", "token_issue", time.Since(start), status)

	return output, err
}

// Validate records metrics for per-request token validation.
func (p *playbackUseCaseWithMetrics) Validate(
	ctx context.Context,
	plainToken string,
	contentID uuid.UUID,
) (*playbackDomain.Token, error) {
	start := time.Now()
	token, err := p.next.Validate(ctx, plainToken, contentID)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "playback", "token_validate", status)
	p.metrics.RecordDuration(ctx, "playback", "token_validate", time.Since(start), status)

	return token, err
}

// Revoke records metrics for early token revocation.
func (p *playbackUseCaseWithMetrics) Revoke(ctx context.Context, plainToken string) error {
	start := time.Now()
	err := p.next.Revoke(ctx, plainToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "playback", "token_revoke", status)
	p.metrics.RecordDuration(ctx, "playback", "token_revoke", time.Since(start), status)

	return err
}
