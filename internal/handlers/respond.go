package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cashbookvn/cashbook_backend/internal/apperrors"
	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/cashbookvn/cashbook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForError maps the service error taxonomy to HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrAccountInactive),
		errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrCrossBranchNotAllowed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error as JSON. Internal errors are logged at Error
// level and their detail withheld from the response body.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

// actorFromContext pulls the authenticated caller set by the auth middleware.
// Returns nil when the request is unauthenticated; the services treat a nil
// actor as ErrUnauthenticated.
func actorFromContext(c *gin.Context) *domain.AuthUser {
	actor, ok := middleware.GetAuthUserFromCtx(c.Request.Context())
	if !ok {
		return nil
	}
	return actor
}
