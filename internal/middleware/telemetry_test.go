package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/irfndi/wearsynth/internal/logging"
)

func setupTracedRouter(t *testing.T, logger logging.Logger) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	router := gin.New()
	router.Use(otelgin.Middleware("wearsynth-test", otelgin.WithTracerProvider(provider)))
	router.Use(RequestID())
	router.Use(TelemetryMiddleware(logger))
	return router, recorder
}

func spanAttrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	return attrs
}

func TestTelemetryMiddleware(t *testing.T) {
	var out bytes.Buffer
	logger := logging.NewStandardLoggerWithWriter(&out, "info", "production")
	router, recorder := setupTracedRouter(t, logger)

	router.GET("/api/v1/devices/:device", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/devices/fitbit_charge_4", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	attrs := spanAttrs(spans[0])
	assert.Equal(t, "req-123", attrs["http.request_id"].AsString())
	assert.Equal(t, "/api/v1/devices/:device", attrs["http.route"].AsString())
	assert.Equal(t, int64(http.StatusOK), attrs["http.status_code"].AsInt64())

	logged := out.String()
	assert.Contains(t, logged, "API request")
	assert.Contains(t, logged, "req-123")
	assert.Contains(t, logged, "/api/v1/devices/fitbit_charge_4")
}

func TestTelemetryMiddleware_ErrorStatus(t *testing.T) {
	router, recorder := setupTracedRouter(t, nil)

	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("generation failed"))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	var recorded bool
	for _, event := range spans[0].Events() {
		if event.Name == "exception" {
			recorded = true
		}
	}
	assert.True(t, recorded)
}

func TestTelemetryMiddleware_QuietPaths(t *testing.T) {
	var out bytes.Buffer
	logger := logging.NewStandardLoggerWithWriter(&out, "info", "production")
	router, _ := setupTracedRouter(t, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, out.String(), "API request")
}

func TestRequestID_Generated(t *testing.T) {
	router, _ := setupTracedRouter(t, nil)

	var seen string
	router.GET("/id", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestID_OversizedHeaderReplaced(t *testing.T) {
	router, _ := setupTracedRouter(t, nil)
	router.GET("/id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestSpanHelpers_NoActiveSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/plain", func(c *gin.Context) {
		AddSpanAttribute(c, "device", "fitbit_sense")
		AddSpanAttribute(c, "days", 3)
		AddSpanAttribute(c, "seed", int64(0))
		AddSpanAttribute(c, "ratio", 0.5)
		AddSpanAttribute(c, "cached", true)
		AddSpanAttribute(c, "other", []int{1})
		RecordError(c, errors.New("ignored"), "ignored")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plain", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSpanHelpers_RecordOnActiveSpan(t *testing.T) {
	router, recorder := setupTracedRouter(t, nil)
	router.GET("/annotated", func(c *gin.Context) {
		AddSpanAttribute(c, "device", "fitbit_sense")
		AddSpanAttribute(c, "days", 3)
		AddSpanAttribute(c, "other", []int{1})
		RecordError(c, errors.New("partial"), "partial failure")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/annotated", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	attrs := spanAttrs(spans[0])
	assert.Equal(t, "fitbit_sense", attrs["device"].AsString())
	assert.Equal(t, int64(3), attrs["days"].AsInt64())
	assert.Equal(t, "[1]", attrs["other"].AsString())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
