// Package middleware provides the gin middleware shared by the API routes: request IDs,
// span annotation and request logging.
package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/irfndi/wearsynth/internal/logging"
)

// quietPaths are probed by orchestrators and not logged per request.
var quietPaths = map[string]bool{
	"/health": true,
	"/ready":  true,
	"/live":   true,
}

// TelemetryMiddleware annotates the request span started by otelgin with the route, request
// ID and response details, and logs the request through logger. logger may be nil.
func TelemetryMiddleware(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		statusCode := c.Writer.Status()
		elapsed := time.Since(start)
		requestID := GetRequestID(c)

		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			attrs := []attribute.KeyValue{
				attribute.Int("http.status_code", statusCode),
				attribute.Int64("http.response.time_ms", elapsed.Milliseconds()),
				attribute.Int64("http.response.size_bytes", int64(c.Writer.Size())),
			}
			if routePath := c.FullPath(); routePath != "" {
				attrs = append(attrs, attribute.String("http.route", routePath))
			}
			if requestID != "" {
				attrs = append(attrs, attribute.String("http.request_id", requestID))
			}
			span.SetAttributes(attrs...)

			if statusCode >= 400 {
				span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", statusCode))
				for _, ginErr := range c.Errors {
					span.RecordError(ginErr.Err)
				}
			}
		}

		if logger != nil && !quietPaths[c.Request.URL.Path] {
			logger.LogAPIRequest(c.Request.Method, c.Request.URL.Path, statusCode, elapsed.Milliseconds(), requestID)
		}
	}
}

// RecordError records an error on the current span.
func RecordError(c *gin.Context, err error, description string) {
	span := trace.SpanFromContext(c.Request.Context())
	if span.IsRecording() {
		span.RecordError(err)
		span.SetStatus(codes.Error, description)
	}
}

// AddSpanAttribute adds an attribute to the current span.
func AddSpanAttribute(c *gin.Context, key string, value interface{}) {
	span := trace.SpanFromContext(c.Request.Context())
	if !span.IsRecording() {
		return
	}
	switch v := value.(type) {
	case string:
		span.SetAttributes(attribute.String(key, v))
	case int:
		span.SetAttributes(attribute.Int(key, v))
	case int64:
		span.SetAttributes(attribute.Int64(key, v))
	case float64:
		span.SetAttributes(attribute.Float64(key, v))
	case bool:
		span.SetAttributes(attribute.Bool(key, v))
	default:
		span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", value)))
	}
}
