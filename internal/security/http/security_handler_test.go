package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/prepdeck/contentguard/internal/errors"
	"github.com/prepdeck/contentguard/internal/identity"
	securityDomain "github.com/prepdeck/contentguard/internal/security/domain"
	"github.com/prepdeck/contentguard/internal/security/http/dto"
	securityUseCase "github.com/prepdeck/contentguard/internal/security/usecase"
)

// mockSecurityUseCase is a mock implementation of SecurityUseCase for testing.
type mockSecurityUseCase struct {
	mock.Mock
}

func (m *mockSecurityUseCase) Record(ctx context.Context, input *securityUseCase.ReportInput) (*securityDomain.Event, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*securityDomain.Event), args.Error(1)
}

func (m *mockSecurityUseCase) List(ctx context.Context, offset, limit int) ([]*securityDomain.Event, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*securityDomain.Event), args.Error(1)
}

func setupTestHandler(t *testing.T) (*SecurityHandler, *mockSecurityUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	uc := &mockSecurityUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewSecurityHandler(uc, logger), uc
}

func createTestContext(method, target string, body any, user *identity.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req = req.WithContext(identity.WithUser(req.Context(), user))
	}
	c.Request = req

	return c, w
}

func TestSecurityHandler_LogSuspiciousHandler(t *testing.T) {
	user := &identity.User{ID: uuid.Must(uuid.NewV7()), Role: identity.RoleViewer}
	contentID := uuid.Must(uuid.NewV7())

	t.Run("Success_Returns202", func(t *testing.T) {
		handler, uc := setupTestHandler(t)

		request := dto.LogSuspiciousActivityRequest{
			ContentID:    contentID.String(),
			ActivityType: "screenshot_attempt",
			Details:      map[string]any{"method": "keyboard"},
			OccurredAt:   time.Now().UTC(),
		}

		recorded := &securityDomain.Event{
			ID:        uuid.Must(uuid.NewV7()),
			UserID:    user.ID,
			ContentID: contentID,
			Type:      securityDomain.ActivityScreenshotAttempt,
		}

		uc.On("Record", mock.Anything, mock.MatchedBy(func(input *securityUseCase.ReportInput) bool {
			return input.UserID == user.ID &&
				input.ContentID == contentID &&
				input.Type == securityDomain.ActivityScreenshotAttempt
		})).Return(recorded, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/security/log-suspicious", request, user)

		handler.LogSuspiciousHandler(c)

		assert.Equal(t, http.StatusAccepted, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Error_UnknownActivityType", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		request := dto.LogSuspiciousActivityRequest{
			ContentID:    contentID.String(),
			ActivityType: "keylogger",
		}

		c, w := createTestContext(http.MethodPost, "/v1/security/log-suspicious", request, user)

		handler.LogSuspiciousHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_SchemaViolation", func(t *testing.T) {
		handler, uc := setupTestHandler(t)

		request := dto.LogSuspiciousActivityRequest{
			ContentID:    contentID.String(),
			ActivityType: "focus_lost",
			Details:      map[string]any{"wrong_key": 1},
		}

		uc.On("Record", mock.Anything, mock.Anything).
			Return(nil, apperrors.Wrap(apperrors.ErrInvalidInput, "missing detail")).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/security/log-suspicious", request, user)

		handler.LogSuspiciousHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_MissingUser", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/security/log-suspicious", nil, nil)

		handler.LogSuspiciousHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestSecurityHandler_ListHandler(t *testing.T) {
	user := &identity.User{ID: uuid.Must(uuid.NewV7()), Role: identity.RoleEditor}

	t.Run("Success_ListEvents", func(t *testing.T) {
		handler, uc := setupTestHandler(t)

		events := []*securityDomain.Event{
			{ID: uuid.Must(uuid.NewV7()), Type: securityDomain.ActivityFocusLost},
		}

		uc.On("List", mock.Anything, 0, 50).Return(events, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/security/suspicious-activity", nil, user)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListEventsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Events, 1)
	})

	t.Run("Error_InvalidPagination", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/security/suspicious-activity?limit=9999", nil, user)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
