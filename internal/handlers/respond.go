package handlers

import (
	"net/http"

	"learning-service/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError maps a domain error onto the response. Unexpected errors are
// logged with the request path and masked as a plain 500.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	if appErr := apperr.From(err); appErr != nil {
		c.JSON(appErr.Status, gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}
	logger.Error("unhandled error",
		zap.String("path", c.FullPath()),
		zap.String("method", c.Request.Method),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "code": "INTERNAL"})
}
