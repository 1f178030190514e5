package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/fintrak/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseLevel(tc.input))
		})
	}
}

func TestFromConfig(t *testing.T) {
	dev := FromConfig(config.LogConfig{Level: "debug", Format: "console", Output: "stderr"}, "development")
	assert.Equal(t, "console", dev.Format)
	assert.Equal(t, "stderr", dev.Output)

	prod := FromConfig(config.LogConfig{Level: "info", Format: "console"}, "production")
	assert.Equal(t, "json", prod.Format)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)
	l.Info("hello")
	require.NoError(t, l.Sync())
	assert.FileExists(t, path)

	_, err = New(&Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.Error(t, err)
}

func TestContext_RequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	ctx, _ := WithRequestID(context.Background(), zap.New(core), "req-1")
	assert.Equal(t, "req-1", GetRequestID(ctx))

	L(ctx).Info("saved")
	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, "req-1", recorded.All()[0].ContextMap()["request_id"])
}

func TestFromContext_DefaultsToNop(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestLOr_UsesFallbackWithoutContextLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	fallback := zap.New(core)

	LOr(context.Background(), fallback).Info("from fallback")
	LOr(WithContext(context.Background(), zap.NewNop()), fallback).Info("dropped")

	assert.Equal(t, 1, recorded.Len())
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.DebugLevel)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "test-req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core), "/health"))
	router.GET("/ok", func(c *gin.Context) {
		assert.Equal(t, "test-req-123", GetRequestID(c.Request.Context()))
		c.Status(http.StatusOK)
	})
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/health", "/bad", "/boom"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
	}

	levels := map[string]zapcore.Level{}
	for _, e := range recorded.FilterMessage("HTTP Request").All() {
		levels[e.ContextMap()["path"].(string)] = e.Level
		assert.Equal(t, "test-req-123", e.ContextMap()["request_id"])
	}
	assert.Equal(t, zapcore.InfoLevel, levels["/ok"])
	assert.Equal(t, zapcore.DebugLevel, levels["/health"])
	assert.Equal(t, zapcore.WarnLevel, levels["/bad"])
	assert.Equal(t, zapcore.ErrorLevel, levels["/boom"])
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.ErrorLevel)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, recorded.FilterMessage("Panic recovered").Len())
}

func TestGetGinLogger_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, GetGinLogger(c))
}

func TestGormLogger_Trace(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Info, WithSlowThreshold(500*time.Millisecond))
	sql := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(context.Background(), time.Now(), sql, errors.New("connection reset"))
	gl.Trace(context.Background(), time.Now(), sql, gormlogger.ErrRecordNotFound)
	gl.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)

	assert.Equal(t, 1, recorded.FilterMessage("SQL Error").Len())
	assert.Equal(t, 1, recorded.FilterMessage("Slow SQL").Len())
	assert.Equal(t, 1, recorded.FilterMessage("SQL Query").Len(), "not-found is traced as a plain query")
}

func TestGormLogger_SilentAndLogMode(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("x"))
	assert.Equal(t, 0, recorded.Len())

	louder, ok := gl.LogMode(gormlogger.Info).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Info, louder.logLevel)
	assert.Equal(t, gormlogger.Silent, gl.logLevel)
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("info"))
}
