package server

import (
	"net/http"
	"testing"

	"inkwell/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	_, app := newTestServer(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status string `json:"status"`
	}
	decode(t, raw, &body)
	assert.Equal(t, "healthy", body.Status)
}

func TestHealthCheckReportsUnhealthy(t *testing.T) {
	srv, app := newTestServer(t)

	sqlDB, err := srv.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp, raw := doJSON(t, app, http.MethodGet, "/api/", nil)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	// Body status matches the response code.
	var body struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
		} `json:"checks"`
	}
	decode(t, raw, &body)
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "unhealthy", body.Checks.Database)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.promMiddleware = middleware.InitMetrics("inkwell-api")

	app := fiber.New()
	app.Use(middleware.MetricsMiddleware(srv.promMiddleware))
	srv.SetupRoutes(app)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/categories", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "http_requests_total")

	resp, _ = doJSON(t, app, http.MethodGet, "/api/metrics/dashboard", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
