package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/property-registry/internal/api/shared/errors"
	"github.com/feral-file/property-registry/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.ErrorResponse{Error: apierrors.NewBadRequestError(message, details...)})
}

// respondUnauthorized responds with an unauthorized error
func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, apierrors.ErrorResponse{Error: apierrors.NewUnauthorizedError(message)})
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, apierrors.ErrorResponse{Error: apierrors.NewValidationError(message)})
}

// respondError classifies err and responds with the matching status.
// Internal errors are logged; their details never reach the client.
func respondError(c *gin.Context, err error, fields ...zap.Field) {
	status, apiErr := apierrors.FromError(err)
	if status >= http.StatusInternalServerError {
		fields = append(fields, zap.String("path", c.Request.URL.Path))
		logger.ErrorCtx(c.Request.Context(), err, fields...)
	}
	c.JSON(status, apierrors.ErrorResponse{Error: apiErr})
}
