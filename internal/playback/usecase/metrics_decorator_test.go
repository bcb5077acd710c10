package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	playbackDomain "github.com/prepdeck/contentguard/internal/playback/domain"
)

// recordingMetrics captures business metric calls for assertions.
type recordingMetrics struct {
	mu         sync.Mutex
	operations []string
	statuses   []string
	durations  int
}

func (r *recordingMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations = append(r.operations, domain+"/"+operation)
	r.statuses = append(r.statuses, status)
}

func (r *recordingMetrics) RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations++
}

// stubPlayback returns fixed results.
type stubPlayback struct {
	issueErr    error
	validateErr error
}

func (s *stubPlayback) Issue(ctx context.Context, input *IssueInput) (*playbackDomain.IssueOutput, error) {
	if s.issueErr != nil {
		return nil, s.issueErr
	}
	return &playbackDomain.IssueOutput{PlainToken: "t"}, nil
}

func (s *stubPlayback) Validate(ctx context.Context, plainToken string, contentID uuid.UUID) (*playbackDomain.Token, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return &playbackDomain.Token{ContentID: contentID}, nil
}

func (s *stubPlayback) Revoke(ctx context.Context, plainToken string) error {
	return nil
}

func TestPlaybackUseCaseWithMetrics(t *testing.T) {
	t.Run("Success_IssueRecordsSuccess", func(t *testing.T) {
		rec := &recordingMetrics{}
		decorated := NewPlaybackUseCaseWithMetrics(&stubPlayback{}, rec)

		_, err := decorated.Issue(context.Background(), &IssueInput{})
		require.NoError(t, err)

		assert.Equal(t, []string{"playback/token_issue"}, rec.operations)
		assert.Equal(t, []string{"success"}, rec.statuses)
		assert.Equal(t, 1, rec.durations)
	})

	t.Run("Success_ValidateRecordsError", func(t *testing.T) {
		rec := &recordingMetrics{}
		decorated := NewPlaybackUseCaseWithMetrics(&stubPlayback{validateErr: playbackDomain.ErrTokenInvalid}, rec)

		_, err := decorated.Validate(context.Background(), "bad", uuid.Must(uuid.NewV7()))
		require.Error(t, err)

		assert.Equal(t, []string{"playback/token_validate"}, rec.operations)
		assert.Equal(t, []string{"error"}, rec.statuses)
	})

	t.Run("Success_RevokeRecords", func(t *testing.T) {
		rec := &recordingMetrics{}
		decorated := NewPlaybackUseCaseWithMetrics(&stubPlayback{}, rec)

		require.NoError(t, decorated.Revoke(context.Background(), "t"))
		assert.Equal(t, []string{"playback/token_revoke"}, rec.operations)
	})
}
