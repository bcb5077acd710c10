// Package http provides HTTP handlers for protected content delivery:
// editor saves, text reads, playback token issuance, and tokenized media
// streaming.
package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	contentDomain "github.com/prepdeck/contentguard/internal/content/domain"
	"github.com/prepdeck/contentguard/internal/content/http/dto"
	contentUseCase "github.com/prepdeck/contentguard/internal/content/usecase"
	apperrors "github.com/prepdeck/contentguard/internal/errors"
	"github.com/prepdeck/contentguard/internal/httputil"
	"github.com/prepdeck/contentguard/internal/identity"
	customValidation "github.com/prepdeck/contentguard/internal/validation"
)

// ContentHandler handles HTTP requests for content operations.
type ContentHandler struct {
	contentUseCase contentUseCase.ContentUseCase
	mediaRoot      string
	logger         *slog.Logger
}

// NewContentHandler creates a new content handler with required dependencies.
func NewContentHandler(
	uc contentUseCase.ContentUseCase,
	mediaRoot string,
	logger *slog.Logger,
) *ContentHandler {
	return &ContentHandler{
		contentUseCase: uc,
		mediaRoot:      mediaRoot,
		logger:         logger,
	}
}

// contentIDParam parses the content_id URL parameter.
func contentIDParam(c *gin.Context) (uuid.UUID, error) {
	contentID, err := uuid.Parse(c.Param("content_id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid content_id: %w", err)
	}
	return contentID, nil
}

// SaveHandler creates a new content item or the next version of an existing one.
// PUT /v1/content/:content_id - Requires the editor role.
// Returns 201 Created with content metadata (the body is never echoed back).
func (h *ContentHandler) SaveHandler(c *gin.Context) {
	contentID, err := contentIDParam(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.SaveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	content, err := h.contentUseCase.Save(c.Request.Context(), &contentUseCase.SaveInput{
		ContentID: contentID,
		Kind:      contentDomain.Kind(req.Kind),
		Premium:   req.Premium,
		Body:      req.Body,
		MediaPath: req.MediaPath,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapContentToMetadataResponse(content))
}

// GetTextHandler returns the plaintext of a text content item.
// GET /v1/content/:content_id - Entitlement is checked on every request.
// Returns 200 OK with the body and an audit correlation token.
func (h *ContentHandler) GetTextHandler(c *gin.Context) {
	contentID, err := contentIDParam(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, ok := identity.UserFromContext(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	result, err := h.contentUseCase.GetText(c.Request.Context(), user.ID, contentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTextResultToResponse(result))
}

// IssuePlaybackTokenHandler mints a playback token for a video content item.
// POST /v1/content/:content_id/playback-token
// Returns 201 Created with the token, playback URL, and expiry.
func (h *ContentHandler) IssuePlaybackTokenHandler(c *gin.Context) {
	contentID, err := contentIDParam(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, ok := identity.UserFromContext(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	// A body-less POST is valid: identity comes from the session and the
	// fingerprint is optional.
	var req dto.PlaybackTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.contentUseCase.RequestPlayback(c.Request.Context(), user.ID, contentID, req.DeviceFingerprint)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapIssueOutputToResponse(output))
}

// ServeMediaHandler streams a media file after validating the playback token.
// GET /v1/media/:content_id?token=...
// The token is validated on every request, byte-range requests included.
// http.ServeFile handles Range headers, so partial responses go through the
// same validation as full ones.
func (h *ContentHandler) ServeMediaHandler(c *gin.Context) {
	contentID, err := contentIDParam(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	plainToken := c.Query("token")
	if plainToken == "" {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	content, err := h.contentUseCase.ResolveMedia(c.Request.Context(), plainToken, contentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	mediaPath := filepath.Join(h.mediaRoot, filepath.Clean("/"+content.MediaPath))
	if !strings.HasPrefix(mediaPath, filepath.Clean(h.mediaRoot)+string(filepath.Separator)) {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrNotFound, "media path outside root"), h.logger)
		return
	}

	http.ServeFile(c.Writer, c.Request, mediaPath)
}
