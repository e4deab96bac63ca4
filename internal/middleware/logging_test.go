package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PropLedger/prop_ledger_app/internal/middleware"
)

func TestGetLoggerFromCtx_ReturnsInjectedLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	base := slog.New(slog.NewTextHandler(io.Discard, nil))
	var seen *slog.Logger

	router := gin.New()
	router.Use(middleware.StructuredLoggingMiddleware(base))
	router.GET("/ping", func(c *gin.Context) {
		seen = middleware.GetLoggerFromCtx(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	require.NotNil(t, seen)
	assert.NotEqual(t, slog.Default(), seen, "request-scoped logger should be enriched, not the default")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestGetLoggerFromCtx_DefaultsWhenMissing(t *testing.T) {
	logger := middleware.GetLoggerFromCtx(context.Background())

	require.NotNil(t, logger, "callers log unconditionally and must never receive nil")
	assert.Equal(t, slog.Default(), logger)
}
