package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Level: "debug", Output: &buf})

	l.Error("falha ao salvar nota", "note_id", "abc", "attempt", 2)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "falha ao salvar nota", line["message"])
	assert.Equal(t, "abc", line["note_id"])
	assert.EqualValues(t, 2, line["attempt"])
}

func TestZeroLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Level: "warn", Output: &buf})

	l.Info("ignorado")
	l.Debug("ignorado")
	assert.Zero(t, buf.Len())

	l.Warn("registrado")
	assert.NotZero(t, buf.Len())
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	l := NewLogger(Options{Output: &buf})

	r := gin.New()
	r.Use(GinMiddleware(l.Zerolog()))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "/health", line["path"])
	assert.EqualValues(t, http.StatusNoContent, line["status"])
}
