// Package http provides HTTP handlers for suspicious-activity reporting.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/prepdeck/contentguard/internal/errors"
	"github.com/prepdeck/contentguard/internal/httputil"
	"github.com/prepdeck/contentguard/internal/identity"
	securityDomain "github.com/prepdeck/contentguard/internal/security/domain"
	"github.com/prepdeck/contentguard/internal/security/http/dto"
	securityUseCase "github.com/prepdeck/contentguard/internal/security/usecase"
	customValidation "github.com/prepdeck/contentguard/internal/validation"
)

// SecurityHandler handles HTTP requests for suspicious-activity reporting.
type SecurityHandler struct {
	securityUseCase securityUseCase.SecurityUseCase
	logger          *slog.Logger
}

// NewSecurityHandler creates a new security handler with required dependencies.
func NewSecurityHandler(uc securityUseCase.SecurityUseCase, logger *slog.Logger) *SecurityHandler {
	return &SecurityHandler{
		securityUseCase: uc,
		logger:          logger,
	}
}

// LogSuspiciousHandler records a client-side protection report.
// POST /v1/security/log-suspicious
// Returns 202 Accepted: the report is advisory, the client never blocks on it.
func (h *SecurityHandler) LogSuspiciousHandler(c *gin.Context) {
	user, ok := identity.UserFromContext(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.LogSuspiciousActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	contentID, err := uuid.Parse(req.ContentID)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	event, err := h.securityUseCase.Record(c.Request.Context(), &securityUseCase.ReportInput{
		UserID:     user.ID,
		ContentID:  contentID,
		Type:       securityDomain.ActivityType(req.ActivityType),
		Details:    req.Details,
		ClientIP:   c.ClientIP(),
		OccurredAt: req.OccurredAt,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusAccepted, dto.MapEventToResponse(event))
}

// ListHandler returns recorded events, newest first, for review tooling.
// GET /v1/security/suspicious-activity?offset=&limit= - Requires the editor role.
func (h *SecurityHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	events, err := h.securityUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventsToListResponse(events, offset, limit))
}
