package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ofauto/backend/internal/domain/content"
	"github.com/ofauto/backend/internal/domain/platform"
	"github.com/ofauto/backend/internal/interfaces/http/dto"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "X-Request-ID"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	if id := c.GetHeader(RequestIDKey); id != "" {
		return id
	}
	return ""
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	requestID := getRequestID(c)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// PlatformError maps an error from the platform layer onto the error
// taxonomy and sends the corresponding response
func (h *BaseHandler) PlatformError(c *gin.Context, err error) {
	code := codeForError(err)
	h.Error(c, dto.GetHTTPStatus(code), code, err.Error())
}

// codeForError translates platform-layer sentinel errors into API error
// codes. Anything unrecognized is reported as internal.
func codeForError(err error) string {
	switch {
	case errors.Is(err, platform.ErrAccountNotFound):
		return dto.ErrCodeNotFound
	case errors.Is(err, platform.ErrNotAuthenticated):
		return dto.ErrCodeNotAuthenticated
	case errors.Is(err, platform.ErrRateLimited):
		return dto.ErrCodeRateLimited
	case errors.Is(err, platform.ErrNotFound):
		return dto.ErrCodePlatformNotFound
	case errors.Is(err, platform.ErrTransientNetwork):
		return dto.ErrCodeTransient
	case errors.Is(err, platform.ErrPermanentRejection):
		return dto.ErrCodePermanentRejection
	case errors.Is(err, platform.ErrNotSupported):
		return dto.ErrCodeNotSupported
	case errors.Is(err, platform.ErrUnknownKind):
		return dto.ErrCodeUnknownPlatform
	case errors.Is(err, content.ErrContentNotFound), errors.Is(err, content.ErrMessageNotFound):
		return dto.ErrCodeNotFound
	case errors.Is(err, content.ErrContentEmptyBody), errors.Is(err, content.ErrContentMissingAccount):
		return dto.ErrCodeValidation
	default:
		return dto.ErrCodeInternal
	}
}
