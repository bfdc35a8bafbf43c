package server

import (
	"inkwell/models"
	"inkwell/repository"
	"inkwell/validation"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/comments — the moderation queue across all
// posts, newest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	pag := parsePagination(c, 20)

	var filter repository.CommentFilter
	if raw := c.Query("status"); raw != "" {
		status := models.CommentStatus(raw)
		if !status.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid comment status"))
		}
		filter.Status = &status
	}
	filter.Search = c.Query("search")

	comments, total, err := s.comments.List(ctx, filter, pag.Limit, pag.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"comments": comments,
		"total":    total,
		"has_more": pag.HasMore(total),
	})
}

// GetPostComments handles GET /api/posts/:id/comments. Only top-level
// comments are returned, oldest first, each carrying its direct replies.
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}
	pag := parsePagination(c, 50)

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return respondStorageError(c, err, "Post", postID)
	}

	var status *models.CommentStatus
	if raw := c.Query("status"); raw != "" {
		parsed := models.CommentStatus(raw)
		if !parsed.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid comment status"))
		}
		status = &parsed
	}

	comments, total, err := s.comments.ListByPost(ctx, postID, status, pag.Limit, pag.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"comments": comments,
		"total":    total,
		"has_more": pag.HasMore(total),
	})
}

// CreateComment handles POST /api/comments. Attribution is optional on every
// axis: an account author, a free-text name/email, or nothing at all.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		PostID      uint   `json:"post_id"`
		Content     string `json:"content"`
		AuthorName  string `json:"author_name"`
		AuthorEmail string `json:"author_email"`
		AuthorID    *uint  `json:"author_id"`
		ParentID    *uint  `json:"parent_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Post ID is required"))
	}
	if req.Content == "" || len(req.Content) > 2000 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required and must be at most 2000 characters"))
	}
	if err := validation.ValidateLength("author name", req.AuthorName, 100); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if req.AuthorEmail != "" {
		if err := validation.ValidateEmail(req.AuthorEmail); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}

	if _, err := s.posts.GetByID(ctx, req.PostID); err != nil {
		return respondStorageError(c, err, "Post", req.PostID)
	}

	// ParentID is stored as given. Nothing checks that the parent exists or
	// belongs to the same post; a bad reference surfaces as a storage error
	// or an orphaned reply.
	comment := &models.Comment{
		PostID:      req.PostID,
		Content:     req.Content,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		AuthorID:    req.AuthorID,
		ParentID:    req.ParentID,
		Status:      models.CommentPending,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	created, err := s.comments.GetByID(ctx, comment.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateCommentStatus handles PATCH /api/comments/:id/status
func (s *Server) UpdateCommentStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()
	commentID, err := s.parseID(c, "id", "comment ID")
	if err != nil {
		return nil
	}

	var req struct {
		Status models.CommentStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if !req.Status.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment status"))
	}

	comment, err := s.comments.UpdateStatus(ctx, commentID, req.Status)
	if err != nil {
		return respondStorageError(c, err, "Comment", commentID)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id. The delete is
// unconditional; replies of a deleted parent are not touched here.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	commentID, err := s.parseID(c, "id", "comment ID")
	if err != nil {
		return nil
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return respondStorageError(c, err, "Comment", commentID)
	}

	return deleteResponse(c)
}
