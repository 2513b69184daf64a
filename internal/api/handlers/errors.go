package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/irfndi/wearsynth/internal/device"
	"github.com/irfndi/wearsynth/internal/slicer"
	"github.com/irfndi/wearsynth/internal/utils"
)

// StatusFor maps a domain error onto an HTTP status.
func StatusFor(err error) int {
	var validationErr *utils.ValidationError
	var parseErr *utils.ParseError
	switch {
	case errors.As(err, &validationErr), errors.As(err, &parseErr), errors.Is(err, slicer.ErrOutOfSpan):
		return http.StatusBadRequest
	case errors.Is(err, device.ErrUnknownDevice), errors.Is(err, device.ErrUnknownMetric):
		return http.StatusNotFound
	case errors.Is(err, device.ErrNotAuthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the {"success": false, "error": ...} body for err. Server errors are
// attached to the gin context so the telemetry middleware records them on the span.
func respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "Failed to produce device data"
	}
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}
