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

func createPostFixture(t *testing.T, srv *Server, slug string) *models.Post {
	t.Helper()

	author := &models.User{
		Email:    slug + "@example.com",
		Username: "author-" + slug,
		Password: "hashed",
		IsActive: true,
	}
	require.NoError(t, srv.db.Create(author).Error)

	post := &models.Post{Title: "Post " + slug, Slug: slug, AuthorID: author.ID}
	require.NoError(t, srv.db.Create(post).Error)
	return post
}

func TestCreateComment(t *testing.T) {
	srv, app := newTestServer(t)
	post := createPostFixture(t, srv, "hello")

	tests := []struct {
		name           string
		body           fiber.Map
		expectedStatus int
	}{
		{
			name:           "anonymous comment",
			body:           fiber.Map{"post_id": post.ID, "content": "nice"},
			expectedStatus: fiber.StatusCreated,
		},
		{
			name: "free-text attribution",
			body: fiber.Map{
				"post_id":      post.ID,
				"content":      "hello",
				"author_name":  "Ada",
				"author_email": "ada@example.com",
			},
			expectedStatus: fiber.StatusCreated,
		},
		{
			name:           "missing post",
			body:           fiber.Map{"content": "nice"},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name:           "unknown post",
			body:           fiber.Map{"post_id": 999, "content": "nice"},
			expectedStatus: fiber.StatusNotFound,
		},
		{
			name:           "empty content",
			body:           fiber.Map{"post_id": post.ID, "content": ""},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name:           "bad author email",
			body:           fiber.Map{"post_id": post.ID, "content": "x", "author_email": "not-an-email"},
			expectedStatus: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := doJSON(t, app, http.MethodPost, "/api/comments", tt.body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == fiber.StatusCreated {
				var comment models.Comment
				decode(t, raw, &comment)
				// New comments are always held for moderation.
				assert.Equal(t, models.CommentPending, comment.Status)
			}
		})
	}
}

func TestGetPostCommentsThreading(t *testing.T) {
	srv, app := newTestServer(t)
	post := createPostFixture(t, srv, "hello")

	top := &models.Comment{Content: "top", PostID: post.ID, Status: models.CommentApproved}
	require.NoError(t, srv.db.Create(top).Error)
	reply := &models.Comment{Content: "reply", PostID: post.ID, ParentID: &top.ID, Status: models.CommentApproved}
	require.NoError(t, srv.db.Create(reply).Error)

	resp, raw := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d/comments", post.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Comments []models.Comment `json:"comments"`
		Total    int64            `json:"total"`
	}
	decode(t, raw, &envelope)
	assert.Equal(t, int64(1), envelope.Total)
	require.Len(t, envelope.Comments, 1)
	require.Len(t, envelope.Comments[0].Replies, 1)
	assert.Equal(t, "reply", envelope.Comments[0].Replies[0].Content)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/posts/999/comments", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateCommentStatus(t *testing.T) {
	srv, app := newTestServer(t)
	post := createPostFixture(t, srv, "hello")

	comment := &models.Comment{Content: "held", PostID: post.ID, Status: models.CommentPending}
	require.NoError(t, srv.db.Create(comment).Error)

	resp, raw := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/comments/%d/status", comment.ID), fiber.Map{"status": "APPROVED"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.Comment
	decode(t, raw, &updated)
	assert.Equal(t, models.CommentApproved, updated.Status)

	resp, _ = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/comments/%d/status", comment.ID), fiber.Map{"status": "BOGUS"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPatch, "/api/comments/999/status", fiber.Map{"status": "SPAM"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteComment(t *testing.T) {
	srv, app := newTestServer(t)
	post := createPostFixture(t, srv, "hello")

	comment := &models.Comment{Content: "gone soon", PostID: post.ID}
	require.NoError(t, srv.db.Create(comment).Error)

	resp, raw := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/comments/%d", comment.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var deleted map[string]bool
	decode(t, raw, &deleted)
	assert.True(t, deleted["success"])
}
