package handler

import (
	"errors"
	"net/http"

	"github.com/yarklimoff/stock-monitor/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a domain error to an HTTP status and a structured JSON
// error body. This is the single place failures turn into responses.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var validationErr *model.ValidationError
	var configErr *model.ConfigurationError
	var upstreamErr *model.UpstreamError
	var transportErr *model.TransportError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &configErr):
		logger.Error("Provider credential missing", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": configErr.Message})
	case errors.As(err, &upstreamErr):
		c.JSON(upstreamErr.HTTPStatus(), gin.H{
			"error": upstreamErr.Message,
			"code":  upstreamErr.Code,
		})
	case errors.As(err, &transportErr):
		logger.Error("Upstream request failed", zap.Error(err))
		c.JSON(transportErr.HTTPStatus(), gin.H{"error": transportErr.Message})
	default:
		logger.Error("Unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
