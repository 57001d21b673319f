package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quillhub/api-go/logging"
	"github.com/quillhub/api-go/services"
)

// respondServiceError maps service-layer errors onto HTTP responses.
// Consistency failures are logged with context and reported as plain
// internal errors; everything else is a recoverable request problem.
func respondServiceError(c *gin.Context, err error) {
	var consistencyErr *services.ConsistencyError
	if errors.As(err, &consistencyErr) {
		logging.L().Error().Err(err).Str("op", consistencyErr.Op).Msg("consistency failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "success": false})
		return
	}

	var status int
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrCategoryNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyFollowing),
		errors.Is(err, services.ErrNotFollowing),
		errors.Is(err, services.ErrAlreadyBlocked),
		errors.Is(err, services.ErrNotBlocked),
		errors.Is(err, services.ErrAlreadyViewed),
		errors.Is(err, services.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, services.ErrSelfFollow),
		errors.Is(err, services.ErrSelfBlock):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrAccountSuspended):
		status = http.StatusForbidden
	default:
		logging.L().Error().Err(err).Msg("unhandled service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "success": false})
		return
	}

	c.JSON(status, gin.H{"error": err.Error(), "success": false})
}
