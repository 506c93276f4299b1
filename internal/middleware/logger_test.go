package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func configForTest() config.RateLimitConfig {
	return config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1}
}

func TestErrorLogger_RecoversPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)

	router := gin.New()
	router.Use(ErrorLogger(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "panic", logs.All()[0].ContextMap()["type"])
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.Use(RequestLogger(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/ok", nil))

	assert.Equal(t, 1, logs.Len())
	assert.EqualValues(t, http.StatusAccepted, logs.All()[0].ContextMap()["status"])
}

func TestLoggerf_UsesLevelPrefix(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logf := Loggerf(zap.New(core))

	logf("level=warn msg=event publish failed type=%s", "payment.completed")
	logf("level=error msg=payment request failed err=%v", "boom")
	logf("level=info msg=room created room_id=%d", 3)
	logf("plain line %d", 1)

	entries := logs.All()
	assert.Equal(t, 4, len(entries))
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, "msg=event publish failed type=payment.completed", entries[0].Message)
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, zap.InfoLevel, entries[2].Level)
	assert.Equal(t, "msg=room created room_id=3", entries[2].Message)
	assert.Equal(t, zap.InfoLevel, entries[3].Level)
	assert.Equal(t, "plain line 1", entries[3].Message)
}
