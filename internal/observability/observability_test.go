package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/issue-tracker/internal/config"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/catalog", http.MethodGet, 200, time.Millisecond)
	m.RecordRequest("/catalog", http.MethodGet, 200, 3*time.Millisecond)
	m.RecordError("/catalog/:id", http.MethodPut, "ID_MISMATCH")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["GET /catalog|200"])
	assert.Equal(t, int64(1), snap.Errors["PUT /catalog/:id|ID_MISMATCH"])
	assert.InDelta(t, 2.0, snap.AvgLatencyMs["GET /catalog|200"], 0.001)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", http.MethodGet, 200, 0)
	m.RecordError("/", http.MethodGet, "X")
	assert.Empty(t, m.Snapshot().Requests)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/catalog", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	app.Get("/missing", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNotFound) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/catalog", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "request handled", first.Message)
	assert.Equal(t, "/catalog", first.ContextMap()["path"])
	assert.Equal(t, zap.WarnLevel, logs.All()[1].Level)
	assert.Equal(t, int64(1), metrics.Snapshot().Requests["GET /catalog|200"])
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "not-a-level"}, config.AppConfig{Name: "issue-tracker-api"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}
