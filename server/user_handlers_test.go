package server

import (
	"fmt"
	"net/http"
	"testing"

	"inkwell/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser(t *testing.T) {
	srv, app := newTestServer(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/users", fiber.Map{
		"email":    "ada@example.com",
		"username": "ada",
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user models.User
	decode(t, raw, &user)
	assert.Equal(t, models.RoleSubscriber, user.Role)
	assert.True(t, user.IsActive)

	// Stored password is a bcrypt hash, never the plaintext.
	var stored models.User
	require.NoError(t, srv.db.First(&stored, user.ID).Error)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
}

func TestCreateUserValidation(t *testing.T) {
	_, app := newTestServer(t)

	tests := []struct {
		name string
		body fiber.Map
	}{
		{"bad email", fiber.Map{"email": "nope", "username": "ada", "password": "secret123"}},
		{"short username", fiber.Map{"email": "a@b.co", "username": "ab", "password": "secret123"}},
		{"short password", fiber.Map{"email": "a@b.co", "username": "ada", "password": "123"}},
		{"bad role", fiber.Map{"email": "a@b.co", "username": "ada", "password": "secret123", "role": "KING"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, http.MethodPost, "/api/users", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestGetUsersSearch(t *testing.T) {
	srv, app := newTestServer(t)
	createAuthor(t, srv)

	other := &models.User{Email: "grace@example.com", Username: "grace", Password: "x", IsActive: true}
	require.NoError(t, srv.db.Create(other).Error)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/users?search=grace", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Users []models.User `json:"users"`
		Total int64         `json:"total"`
	}
	decode(t, raw, &envelope)
	assert.Equal(t, int64(1), envelope.Total)
	require.Len(t, envelope.Users, 1)
	assert.Equal(t, "grace", envelope.Users[0].Username)
}

func TestUpdateUser(t *testing.T) {
	srv, app := newTestServer(t)
	user := createAuthor(t, srv)

	resp, raw := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID), fiber.Map{
		"first_name": "Ada",
		"role":       "EDITOR",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.User
	decode(t, raw, &updated)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, models.RoleEditor, updated.Role)
	// Untouched fields survive.
	assert.Equal(t, user.Email, updated.Email)

	resp, _ = doJSON(t, app, http.MethodPut, "/api/users/999", fiber.Map{"first_name": "X"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteUser(t *testing.T) {
	srv, app := newTestServer(t)
	user := createAuthor(t, srv)

	resp, raw := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var deleted map[string]bool
	decode(t, raw, &deleted)
	assert.True(t, deleted["success"])

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
