package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, secret, subject string, expiresIn time.Duration) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(expiresIn).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newGatedApp() *fiber.App {
	app := fiber.New()
	app.Use(WriteGate(testSecret))
	app.Get("/posts", func(c *fiber.Ctx) error {
		return c.SendString("list")
	})
	app.Post("/posts", func(c *fiber.Ctx) error {
		id, ok := AuthenticatedUserID(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"author": id})
	})
	return app
}

func TestWriteGate(t *testing.T) {
	app := newGatedApp()

	tests := []struct {
		name           string
		method         string
		authorization  string
		expectedStatus int
	}{
		{"GET passes without token", http.MethodGet, "", fiber.StatusOK},
		{"POST without token", http.MethodPost, "", fiber.StatusUnauthorized},
		{"POST with malformed header", http.MethodPost, "Token abc", fiber.StatusUnauthorized},
		{"POST with garbage token", http.MethodPost, "Bearer garbage", fiber.StatusUnauthorized},
		{
			"POST with expired token",
			http.MethodPost,
			"Bearer " + signToken(t, testSecret, "7", -time.Minute),
			fiber.StatusUnauthorized,
		},
		{
			"POST with wrong secret",
			http.MethodPost,
			"Bearer " + signToken(t, "other-secret", "7", time.Minute),
			fiber.StatusUnauthorized,
		},
		{
			"POST with non-numeric subject",
			http.MethodPost,
			"Bearer " + signToken(t, testSecret, "alice", time.Minute),
			fiber.StatusUnauthorized,
		},
		{
			"POST with valid token",
			http.MethodPost,
			"Bearer " + signToken(t, testSecret, "7", time.Minute),
			fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/posts", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestVerifyToken(t *testing.T) {
	token := signToken(t, testSecret, "42", time.Minute)

	userID, err := VerifyToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	_, err = VerifyToken(token, "wrong")
	assert.Error(t, err)
}
