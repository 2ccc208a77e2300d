package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cleanlog-backend/internal/service"
)

// respondError translates service failures into HTTP status codes so the
// services never need to know about transport concerns.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrTopicNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrThoughtNotFound),
		errors.Is(err, service.ErrParentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDefaultTopicProtected),
		errors.Is(err, service.ErrCommentsDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidUpload),
		errors.Is(err, service.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
