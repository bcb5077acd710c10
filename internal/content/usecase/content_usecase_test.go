package usecase

import (
	"context"
	"crypto/sha256"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	contentDomain "github.com/prepdeck/contentguard/internal/content/domain"
	cryptoDomain "github.com/prepdeck/contentguard/internal/crypto/domain"
	entitlementDomain "github.com/prepdeck/contentguard/internal/entitlement/domain"
	apperrors "github.com/prepdeck/contentguard/internal/errors"
	playbackDomain "github.com/prepdeck/contentguard/internal/playback/domain"
	playbackUseCase "github.com/prepdeck/contentguard/internal/playback/usecase"
)

// mockContentRepository is a mock implementation of ContentRepository for testing.
type mockContentRepository struct {
	mock.Mock
}

func (m *mockContentRepository) Upsert(ctx context.Context, content *contentDomain.Content) error {
	args := m.Called(ctx, content)
	return args.Error(0)
}

func (m *mockContentRepository) Get(ctx context.Context, contentID uuid.UUID) (*contentDomain.Content, error) {
	args := m.Called(ctx, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contentDomain.Content), args.Error(1)
}

func (m *mockContentRepository) IsPremium(ctx context.Context, contentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, contentID)
	return args.Bool(0), args.Error(1)
}

// mockSealer is a mock implementation of crypto service.Sealer for testing.
type mockSealer struct {
	mock.Mock
}

func (m *mockSealer) Seal(plaintext []byte) (cryptoDomain.Envelope, error) {
	args := m.Called(plaintext)
	return args.Get(0).(cryptoDomain.Envelope), args.Error(1)
}

func (m *mockSealer) Open(envelope cryptoDomain.Envelope) ([]byte, error) {
	args := m.Called(envelope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// mockOracle is a mock implementation of the entitlement oracle for testing.
type mockOracle struct {
	mock.Mock
}

func (m *mockOracle) CanAccess(ctx context.Context, userID, contentID uuid.UUID) (entitlementDomain.Decision, error) {
	args := m.Called(ctx, userID, contentID)
	return args.Get(0).(entitlementDomain.Decision), args.Error(1)
}

// mockPlaybackUseCase is a mock implementation of PlaybackUseCase for testing.
type mockPlaybackUseCase struct {
	mock.Mock
}

func (m *mockPlaybackUseCase) Issue(ctx context.Context, input *playbackUseCase.IssueInput) (*playbackDomain.IssueOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*playbackDomain.IssueOutput), args.Error(1)
}

func (m *mockPlaybackUseCase) Validate(ctx context.Context, plainToken string, contentID uuid.UUID) (*playbackDomain.Token, error) {
	args := m.Called(ctx, plainToken, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*playbackDomain.Token), args.Error(1)
}

func (m *mockPlaybackUseCase) Revoke(ctx context.Context, plainToken string) error {
	args := m.Called(ctx, plainToken)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestContentUseCase_Save(t *testing.T) {
	ctx := context.Background()
	contentID := uuid.Must(uuid.NewV7())

	t.Run("Success_PremiumContentIsSealed", func(t *testing.T) {
		contents := &mockContentRepository{}
		sealer := &mockSealer{}
		oracle := &mockOracle{}
		playback := &mockPlaybackUseCase{}

		body := []byte("premium lesson body")
		envelope := cryptoDomain.Envelope{
			Ciphertext: []byte("sealed"),
			KeyVersion: "v1",
			Algorithm:  cryptoDomain.AESGCM,
		}

		sealer.On("Seal", body).Return(envelope, nil).Once()
		contents.On("Upsert", ctx, mock.MatchedBy(func(content *contentDomain.Content) bool {
			expectedHash := sha256.Sum256(body)
			return content.ID == contentID &&
				content.Premium &&
				len(content.Body) == 0 &&
				string(content.Envelope.Ciphertext) == "sealed" &&
				string(content.ContentHash) == string(expectedHash[:])
		})).Return(nil).Once()

		uc := NewContentUseCase(contents, sealer, oracle, playback, testLogger())
		content, err := uc.Save(ctx, &SaveInput{
			ContentID: contentID,
			Kind:      contentDomain.KindText,
			Premium:   true,
			Body:      body,
		})

		require.NoError(t, err)
		assert.Empty(t, content.Body, "premium plaintext must not be persisted")
		contents.AssertExpectations(t)
		sealer.AssertExpectations(t)
	})

	t.Run("Success_FreeContentStoredPlaintextWithHash", func(t *testing.T) {
		contents := &mockContentRepository{}
		sealer := &mockSealer{}
		oracle := &mockOracle{}
		playback := &mockPlaybackUseCase{}

		body := []byte("free lesson body")

		contents.On("Upsert", ctx, mock.MatchedBy(func(content *contentDomain.Content) bool {
			expectedHash := sha256.Sum256(body)
			return !content.Premium &&
				string(content.Body) == string(body) &&
				string(content.ContentHash) == string(expectedHash[:])
		})).Return(nil).Once()

		uc := NewContentUseCase(contents, sealer, oracle, playback, testLogger())
		_, err := uc.Save(ctx, &SaveInput{
			ContentID: contentID,
			Kind:      contentDomain.KindText,
			Premium:   false,
			Body:      body,
		})

		require.NoError(t, err)
		sealer.AssertNotCalled(t, "Seal", mock.Anything)
	})

	t.Run("Error_UnknownKind", func(t *testing.T) {
		uc := NewContentUseCase(&mockContentRepository{}, &mockSealer{}, &mockOracle{}, &mockPlaybackUseCase{}, testLogger())

		_, err := uc.Save(ctx, &SaveInput{
			ContentID: contentID,
			Kind:      contentDomain.Kind("audio"),
			Body:      []byte("x"),
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestContentUseCase_GetText(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	contentID := uuid.Must(uuid.NewV7())

	t.Run("Success_PremiumTextDecrypted", func(t *testing.T) {
		contents := &mockContentRepository{}
		sealer := &mockSealer{}
		oracle := &mockOracle{}
		playback := &mockPlaybackUseCase{}

		envelope := cryptoDomain.Envelope{Ciphertext: []byte("sealed"), KeyVersion: "v1"}
		stored := &contentDomain.Content{
			ID:       contentID,
			Kind:     contentDomain.KindText,
			Premium:  true,
			Envelope: envelope,
		}

		oracle.On("CanAccess", ctx, userID, contentID).Return(entitlementDomain.Allow(), nil).Once()
		contents.On("Get", ctx, contentID).Return(stored, nil).Once()
		sealer.On("Open", envelope).Return([]byte("the lesson"), nil).Once()

		uc := NewContentUseCase(contents, sealer, oracle, playback, testLogger())
		result, err := uc.GetText(ctx, userID, contentID)

		require.NoError(t, err)
		assert.Equal(t, []byte("the lesson"), result.Plaintext)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("Success_FreeTextReturnedDirectly", func(t *testing.T) {
		contents := &mockContentRepository{}
		sealer := &mockSealer{}
		oracle := &mockOracle{}
		playback := &mockPlaybackUseCase{}

		stored := &contentDomain.Content{
			ID:   contentID,
			Kind: contentDomain.KindText,
			Body: []byte("free lesson"),
		}

		oracle.On("CanAccess", ctx, userID, contentID).Return(entitlementDomain.Allow(), nil).Once()
		contents.On("Get", ctx, contentID).Return(stored, nil).Once()

		uc := NewContentUseCase(contents, sealer, oracle, playback, testLogger())
		result, err := uc.GetText(ctx, userID, contentID)

		require.NoError(t, err)
		assert.Equal(t, []byte("free lesson"), result.Plaintext)
		sealer.AssertNotCalled(t, "Open", mock.Anything)
	})

	t.Run("Error_DeniedBeforeRepositoryAccess", func(t *testing.T) {
		contents := &mockContentRepository{}
		sealer := &mockSealer{}
		oracle := &mockOracle{}
		playback := &mockPlaybackUseCase{}

		oracle.On("CanAccess", ctx, userID, contentID).
			Return(entitlementDomain.Deny(entitlementDomain.ReasonSubscriptionRequired), nil).
			Once()

		uc := NewContentUseCase(contents, sealer, oracle, playback, testLogger())
		_, err := uc.GetText(ctx, userID, contentID)

		var denied *entitlementDomain.AccessDeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, entitlementDomain.ReasonSubscriptionRequired, denied.Reason)
		contents.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Error_DecryptionFailureSurfaces", func(t *testing.T) {
		contents := &mockContentRepository{}
		sealer := &mockSealer{}
		oracle := &mockOracle{}
		playback := &mockPlaybackUseCase{}

		stored := &contentDomain.Content{
			ID:      contentID,
			Kind:    contentDomain.KindText,
			Premium: true,
		}

		oracle.On("CanAccess", ctx, userID, contentID).Return(entitlementDomain.Allow(), nil).Once()
		contents.On("Get", ctx, contentID).Return(stored, nil).Once()
		sealer.On("Open", mock.Anything).Return(nil, cryptoDomain.ErrIntegrity).Once()

		uc := NewContentUseCase(contents, sealer, oracle, playback, testLogger())
		_, err := uc.GetText(ctx, userID, contentID)

		assert.ErrorIs(t, err, cryptoDomain.ErrIntegrity)
	})

	t.Run("Error_VideoContentRejected", func(t *testing.T) {
		contents := &mockContentRepository{}
		sealer := &mockSealer{}
		oracle := &mockOracle{}
		playback := &mockPlaybackUseCase{}

		stored := &contentDomain.Content{ID: contentID, Kind: contentDomain.KindVideo}

		oracle.On("CanAccess", ctx, userID, contentID).Return(entitlementDomain.Allow(), nil).Once()
		contents.On("Get", ctx, contentID).Return(stored, nil).Once()

		uc := NewContentUseCase(contents, sealer, oracle, playback, testLogger())
		_, err := uc.GetText(ctx, userID, contentID)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestContentUseCase_RequestPlayback(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	contentID := uuid.Must(uuid.NewV7())

	t.Run("Success_DelegatesToPlayback", func(t *testing.T) {
		contents := &mockContentRepository{}
		sealer := &mockSealer{}
		oracle := &mockOracle{}
		playback := &mockPlaybackUseCase{}

		stored := &contentDomain.Content{ID: contentID, Kind: contentDomain.KindVideo, MediaPath: "lessons/1.mp4"}
		output := &playbackDomain.IssueOutput{
			PlainToken:  "plain",
			PlaybackURL: "/v1/media/" + contentID.String() + "?token=plain",
			ExpiresAt:   time.Now().UTC().Add(15 * time.Minute),
		}

		contents.On("Get", ctx, contentID).Return(stored, nil).Once()
		playback.On("Issue", ctx, mock.MatchedBy(func(input *playbackUseCase.IssueInput) bool {
			return input.UserID == userID &&
				input.ContentID == contentID &&
				input.DeviceFingerprint == "device-abc"
		})).Return(output, nil).Once()

		uc := NewContentUseCase(contents, sealer, oracle, playback, testLogger())
		result, err := uc.RequestPlayback(ctx, userID, contentID, "device-abc")

		require.NoError(t, err)
		assert.Equal(t, "plain", result.PlainToken)
	})

	t.Run("Error_UnknownContentDeniedAsNotFound", func(t *testing.T) {
		contents := &mockContentRepository{}
		playback := &mockPlaybackUseCase{}

		contents.On("Get", ctx, contentID).
			Return(nil, apperrors.Wrap(apperrors.ErrNotFound, "content not found")).
			Once()

		uc := NewContentUseCase(contents, &mockSealer{}, &mockOracle{}, playback, testLogger())
		_, err := uc.RequestPlayback(ctx, userID, contentID, "device-abc")

		var denied *entitlementDomain.AccessDeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, entitlementDomain.ReasonContentNotFound, denied.Reason)
	})

	t.Run("Error_TextContentRejected", func(t *testing.T) {
		contents := &mockContentRepository{}
		playback := &mockPlaybackUseCase{}

		stored := &contentDomain.Content{ID: contentID, Kind: contentDomain.KindText}
		contents.On("Get", ctx, contentID).Return(stored, nil).Once()

		uc := NewContentUseCase(contents, &mockSealer{}, &mockOracle{}, playback, testLogger())
		_, err := uc.RequestPlayback(ctx, userID, contentID, "device-abc")

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		playback.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})
}

func TestContentUseCase_ResolveMedia(t *testing.T) {
	ctx := context.Background()
	contentID := uuid.Must(uuid.NewV7())

	t.Run("Success_ValidTokenResolvesMedia", func(t *testing.T) {
		contents := &mockContentRepository{}
		playback := &mockPlaybackUseCase{}

		stored := &contentDomain.Content{ID: contentID, Kind: contentDomain.KindVideo, MediaPath: "lessons/1.mp4"}
		token := &playbackDomain.Token{ContentID: contentID}

		playback.On("Validate", ctx, "plain", contentID).Return(token, nil).Once()
		contents.On("Get", ctx, contentID).Return(stored, nil).Once()

		uc := NewContentUseCase(contents, &mockSealer{}, &mockOracle{}, playback, testLogger())
		content, err := uc.ResolveMedia(ctx, "plain", contentID)

		require.NoError(t, err)
		assert.Equal(t, "lessons/1.mp4", content.MediaPath)
	})

	t.Run("Error_InvalidTokenBlocksMedia", func(t *testing.T) {
		contents := &mockContentRepository{}
		playback := &mockPlaybackUseCase{}

		playback.On("Validate", ctx, "plain", contentID).
			Return(nil, playbackDomain.ErrTokenInvalid).
			Once()

		uc := NewContentUseCase(contents, &mockSealer{}, &mockOracle{}, playback, testLogger())
		_, err := uc.ResolveMedia(ctx, "plain", contentID)

		assert.ErrorIs(t, err, playbackDomain.ErrTokenInvalid)
		contents.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}
