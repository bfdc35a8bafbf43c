package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/config"
	"inkwell/database"
	"inkwell/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a server over an in-memory SQLite database and a
// fresh Fiber app with the full route table. The single-connection pool is
// required: concurrent page+count queries against :memory: would otherwise
// each get their own empty database.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{JWTSecret: "test-secret-key"}
	srv := New(cfg, db, nil)

	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app
}

func createAuthor(t *testing.T, srv *Server) *models.User {
	t.Helper()

	user := &models.User{
		Email:    "author@example.com",
		Username: "author",
		Password: "hashed",
		Role:     models.RoleAuthor,
		IsActive: true,
	}
	require.NoError(t, srv.db.Create(user).Error)
	return user
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func decode(t *testing.T, raw []byte, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, out))
}
