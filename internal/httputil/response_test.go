package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/prepdeck/contentguard/internal/crypto/domain"
	entitlementDomain "github.com/prepdeck/contentguard/internal/entitlement/domain"
	apperrors "github.com/prepdeck/contentguard/internal/errors"
	playbackDomain "github.com/prepdeck/contentguard/internal/playback/domain"
)

func performError(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleErrorGin(c, err, nil)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleErrorGin(t *testing.T) {
	t.Run("Success_SubscriptionDenialKeepsReasonCode", func(t *testing.T) {
		w, body := performError(t, entitlementDomain.NewAccessDeniedError(
			entitlementDomain.ReasonSubscriptionRequired,
		))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "access_denied", body.Error)
		assert.Equal(t, "subscription_required", body.Code)
	})

	t.Run("Success_DeviceLimitKeepsReasonCode", func(t *testing.T) {
		w, body := performError(t, entitlementDomain.NewAccessDeniedError(
			entitlementDomain.ReasonDeviceLimitExceeded,
		))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "device_limit_exceeded", body.Code)
	})

	t.Run("Success_ContentNotFoundIs404", func(t *testing.T) {
		w, body := performError(t, entitlementDomain.NewAccessDeniedError(
			entitlementDomain.ReasonContentNotFound,
		))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "content_not_found", body.Code)
	})

	t.Run("Success_TokenInvalidIs401", func(t *testing.T) {
		w, body := performError(t, playbackDomain.ErrTokenInvalid)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "token_invalid", body.Error)
	})

	t.Run("Success_IntegrityFailureIsGenericContentError", func(t *testing.T) {
		w, body := performError(t, cryptoDomain.ErrIntegrity)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "content_error", body.Error)
		assert.NotContains(t, body.Message, "integrity")
	})

	t.Run("Success_UnsupportedKeyVersionIsGenericContentError", func(t *testing.T) {
		w, body := performError(t, cryptoDomain.ErrUnsupportedKeyVersion)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "content_error", body.Error)
	})

	t.Run("Success_GenericSentinels", func(t *testing.T) {
		w, body := performError(t, apperrors.ErrUnauthorized)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "unauthorized", body.Error)

		w, body = performError(t, apperrors.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", body.Error)

		w, body = performError(t, apperrors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal_error", body.Error)
	})
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success_Defaults", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		offset, limit, err := ParsePagination(c)
		require.NoError(t, err)
		assert.Equal(t, 0, offset)
		assert.Equal(t, 50, limit)
	})

	t.Run("Error_LimitTooLarge", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/?limit=1000", nil)

		_, _, err := ParsePagination(c)
		assert.Error(t, err)
	})
}
