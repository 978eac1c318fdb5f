package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dsridhar11/mbot123/internal/domain"
)

// writeError converts component errors into the externally visible status
// and message. Underlying detail stays in the server log; clients only see
// a generic message for 5xx failures.
func (h *Handler) writeError(c *gin.Context, err error) {
	var gatewayErr *domain.GatewayError
	var persistErr *domain.PersistenceError

	switch {
	case errors.Is(err, domain.ErrNoInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No input provided"})
	case errors.Is(err, domain.ErrInvalidName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report name"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
	case errors.As(err, &gatewayErr):
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("model gateway failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "The assistant is temporarily unavailable"})
	case errors.As(err, &persistErr):
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("persistence failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
