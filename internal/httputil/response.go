// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/prepdeck/contentguard/internal/crypto/domain"
	entitlementDomain "github.com/prepdeck/contentguard/internal/entitlement/domain"
	apperrors "github.com/prepdeck/contentguard/internal/errors"
	playbackDomain "github.com/prepdeck/contentguard/internal/playback/domain"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON response.
//
// Ordering matters: the specific protection-domain errors are matched before
// the generic sentinels they wrap, so denial reasons and token failures keep
// their distinct codes. Cryptographic failures deliberately collapse into a
// generic "content_error"; the detail is logged server-side only.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	var denied *entitlementDomain.AccessDeniedError

	switch {
	case apperrors.As(err, &denied):
		statusCode = http.StatusForbidden
		message := "You don't have access to this content"
		switch denied.Reason {
		case entitlementDomain.ReasonSubscriptionRequired:
			message = "An active subscription is required for this content"
		case entitlementDomain.ReasonDeviceLimitExceeded:
			message = "Device limit reached. Log out on another device and try again"
		case entitlementDomain.ReasonContentNotFound:
			statusCode = http.StatusNotFound
			message = "The requested content was not found"
		}
		errorResponse = ErrorResponse{
			Error:   "access_denied",
			Message: message,
			Code:    string(denied.Reason),
		}

	case apperrors.Is(err, playbackDomain.ErrTokenInvalid):
		statusCode = http.StatusUnauthorized
		errorResponse = ErrorResponse{
			Error:   "token_invalid",
			Message: "The playback token is invalid or expired",
		}

	case apperrors.Is(err, cryptoDomain.ErrIntegrity),
		apperrors.Is(err, cryptoDomain.ErrUnsupportedKeyVersion):
		// Never expose cryptographic detail to clients.
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Error:   "content_error",
			Message: "The content could not be processed",
		}

	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{
			Error:   "not_found",
			Message: "The requested resource was not found",
		}

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		errorResponse = ErrorResponse{
			Error:   "conflict",
			Message: "A conflict occurred with existing data",
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = ErrorResponse{
			Error:   "invalid_input",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errorResponse = ErrorResponse{
			Error:   "unauthorized",
			Message: "Authentication is required",
		}

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		errorResponse = ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to access this resource",
		}

	default:
		// For unknown/internal errors, don't expose details to the client
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		}
	}

	// Log the full error details (including wrapped errors)
	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}

// MakeJSONResponse writes a JSON response with the given status code using
// the standard library; used by middleware that runs outside gin handlers.
func MakeJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
