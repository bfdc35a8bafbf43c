package server

import (
	"fmt"
	"net/http"
	"testing"

	"inkwell/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	_, app := newTestServer(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/categories", fiber.Map{
		"name":  "Tech",
		"slug":  "tech",
		"color": "#3B82F6",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var cat models.Category
	decode(t, raw, &cat)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/categories/find?slug=tech", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var found models.Category
	decode(t, raw, &found)
	assert.Equal(t, cat.ID, found.ID)

	resp, raw = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/categories/%d", cat.ID), fiber.Map{
		"name": "Technology",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, raw, &found)
	assert.Equal(t, "Technology", found.Name)
	assert.Equal(t, "tech", found.Slug)

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/categories/%d", cat.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/categories/find?slug=tech", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCategoryValidation(t *testing.T) {
	_, app := newTestServer(t)

	tests := []struct {
		name string
		body fiber.Map
	}{
		{"missing name", fiber.Map{"slug": "tech"}},
		{"bad slug", fiber.Map{"name": "Tech", "slug": "Tech Slug"}},
		{"bad color", fiber.Map{"name": "Tech", "slug": "tech", "color": "blue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, http.MethodPost, "/api/categories", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestGetCategoriesActiveOnly(t *testing.T) {
	srv, app := newTestServer(t)

	require.NoError(t, srv.db.Create(&models.Category{Name: "Live", Slug: "live", IsActive: true}).Error)
	require.NoError(t, srv.db.Create(&models.Category{Name: "Hidden", Slug: "hidden", IsActive: false}).Error)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/categories", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cats []models.Category
	decode(t, raw, &cats)
	assert.Len(t, cats, 1)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/categories?active_only=false", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, raw, &cats)
	assert.Len(t, cats, 2)
}

func TestDeleteCategoryWithPosts(t *testing.T) {
	srv, app := newTestServer(t)
	author := createAuthor(t, srv)

	cat := &models.Category{Name: "Tech", Slug: "tech", IsActive: true}
	require.NoError(t, srv.db.Create(cat).Error)
	post := &models.Post{Title: "Hello", Slug: "hello", AuthorID: author.ID, Categories: []models.Category{*cat}}
	require.NoError(t, srv.db.Create(post).Error)

	// The delete is unconditional; attached posts survive it.
	resp, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/categories/%d", cat.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/find?id=%d", post.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestFindCategoryUsageError(t *testing.T) {
	_, app := newTestServer(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/categories/find", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body models.ErrorResponse
	decode(t, raw, &body)
	assert.Equal(t, "USAGE_ERROR", body.Code)
}

func TestTagCRUD(t *testing.T) {
	_, app := newTestServer(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/tags", fiber.Map{
		"name": "Tutorial",
		"slug": "tutorial",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var tag models.Tag
	decode(t, raw, &tag)

	resp, raw = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/tags/find?id=%d", tag.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var found models.Tag
	decode(t, raw, &found)
	assert.Equal(t, "tutorial", found.Slug)

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/tags/%d", tag.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
