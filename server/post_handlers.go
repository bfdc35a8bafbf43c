package server

import (
	"errors"
	"strconv"
	"time"

	"inkwell/models"
	"inkwell/repository"
	"inkwell/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	pag := parsePagination(c, 10)

	filter, err := s.parsePostFilter(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	posts, total, err := s.posts.List(ctx, filter, pag.Limit, pag.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"posts":    posts,
		"total":    total,
		"has_more": pag.HasMore(total),
	})
}

func (s *Server) parsePostFilter(c *fiber.Ctx) (repository.PostFilter, error) {
	var filter repository.PostFilter

	if raw := c.Query("status"); raw != "" {
		status := models.PostStatus(raw)
		if !status.Valid() {
			return filter, models.NewValidationError("Invalid post status")
		}
		filter.Status = &status
	}
	if raw := c.Query("author_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filter, models.NewValidationError("Invalid author ID")
		}
		authorID := uint(id)
		filter.AuthorID = &authorID
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filter, models.NewValidationError("Invalid category ID")
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}
	if raw := c.Query("tag_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filter, models.NewValidationError("Invalid tag ID")
		}
		tagID := uint(id)
		filter.TagID = &tagID
	}
	filter.Search = c.Query("search")
	filter.Published = c.QueryBool("published", false)

	return filter, nil
}

// FindPost handles GET /api/posts/find?id=...&slug=...
// Exactly one identifier is expected; when both are present the id wins.
func (s *Server) FindPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	idParam := c.Query("id")
	slug := c.Query("slug")

	if idParam == "" && slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewUsageError("Either id or slug must be provided"))
	}

	var (
		post *models.Post
		err  error
	)
	if idParam != "" {
		id, perr := strconv.ParseUint(idParam, 10, 32)
		if perr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid post ID"))
		}
		post, err = s.posts.GetByID(ctx, uint(id))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Post", id))
		}
	} else {
		post, err = s.posts.GetBySlug(ctx, slug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundByError("Post", "slug", slug))
		}
	}
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(post)
}

type postRequest struct {
	Title           string            `json:"title"`
	Slug            string            `json:"slug"`
	Excerpt         string            `json:"excerpt"`
	Content         string            `json:"content"`
	FeaturedImage   string            `json:"featured_image"`
	Status          models.PostStatus `json:"status"`
	PublishedAt     *time.Time        `json:"published_at"`
	ScheduledAt     *time.Time        `json:"scheduled_at"`
	MetaTitle       string            `json:"meta_title"`
	MetaDescription string            `json:"meta_description"`
	CanonicalURL    string            `json:"canonical_url"`
	AuthorID        uint              `json:"author_id"`
	CategoryIDs     []uint            `json:"category_ids"`
	TagIDs          []uint            `json:"tag_ids"`
}

func (r *postRequest) validate() error {
	if r.Title == "" || len(r.Title) > 200 {
		return models.NewValidationError("Title is required and must be at most 200 characters")
	}
	if err := validation.ValidateSlug(r.Slug, 200); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateLength("excerpt", r.Excerpt, 500); err != nil {
		return models.NewValidationError(err.Error())
	}
	if r.FeaturedImage != "" {
		if err := validation.ValidateURL(r.FeaturedImage); err != nil {
			return models.NewValidationError("Invalid featured image URL")
		}
	}
	if r.Status == "" {
		r.Status = models.PostDraft
	}
	if !r.Status.Valid() {
		return models.NewValidationError("Invalid post status")
	}
	if err := validation.ValidateLength("meta title", r.MetaTitle, 60); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateLength("meta description", r.MetaDescription, 160); err != nil {
		return models.NewValidationError(err.Error())
	}
	if r.CanonicalURL != "" {
		if err := validation.ValidateURL(r.CanonicalURL); err != nil {
			return models.NewValidationError("Invalid canonical URL")
		}
	}
	if r.AuthorID == 0 {
		return models.NewValidationError("Author ID is required")
	}
	return nil
}

// CreatePost handles POST /api/posts. Category and tag IDs are connected
// additively; the created post is reloaded so the response carries author and
// relation data.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := req.validate(); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	post := &models.Post{
		Title:           req.Title,
		Slug:            req.Slug,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		FeaturedImage:   req.FeaturedImage,
		Status:          req.Status,
		PublishedAt:     req.PublishedAt,
		ScheduledAt:     req.ScheduledAt,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		CanonicalURL:    req.CanonicalURL,
		AuthorID:        req.AuthorID,
	}

	if err := s.posts.Create(ctx, post, req.CategoryIDs, req.TagIDs); err != nil {
		return respondStorageError(c, err, "Post", post.Slug)
	}

	created, err := s.posts.GetByID(ctx, post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

type postUpdateRequest struct {
	Title           *string            `json:"title"`
	Slug            *string            `json:"slug"`
	Excerpt         *string            `json:"excerpt"`
	Content         *string            `json:"content"`
	FeaturedImage   *string            `json:"featured_image"`
	Status          *models.PostStatus `json:"status"`
	PublishedAt     *time.Time         `json:"published_at"`
	ScheduledAt     *time.Time         `json:"scheduled_at"`
	MetaTitle       *string            `json:"meta_title"`
	MetaDescription *string            `json:"meta_description"`
	CanonicalURL    *string            `json:"canonical_url"`
	CategoryIDs     *[]uint            `json:"category_ids"`
	TagIDs          *[]uint            `json:"tag_ids"`
}

// UpdatePost handles PUT /api/posts/:id. Only fields present in the body are
// touched. When category_ids or tag_ids is present the relation set is
// replaced wholesale, not merged — an empty array clears the relation.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	var req postUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return respondStorageError(c, err, "Post", postID)
	}

	if req.Title != nil {
		if *req.Title == "" || len(*req.Title) > 200 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Title must be between 1 and 200 characters"))
		}
		post.Title = *req.Title
	}
	if req.Slug != nil {
		if err := validation.ValidateSlug(*req.Slug, 200); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		post.Slug = *req.Slug
	}
	if req.Excerpt != nil {
		if err := validation.ValidateLength("excerpt", *req.Excerpt, 500); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		post.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.FeaturedImage != nil {
		if *req.FeaturedImage != "" {
			if err := validation.ValidateURL(*req.FeaturedImage); err != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("Invalid featured image URL"))
			}
		}
		post.FeaturedImage = *req.FeaturedImage
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid post status"))
		}
		post.Status = *req.Status
	}
	if req.PublishedAt != nil {
		post.PublishedAt = req.PublishedAt
	}
	if req.ScheduledAt != nil {
		post.ScheduledAt = req.ScheduledAt
	}
	if req.MetaTitle != nil {
		if err := validation.ValidateLength("meta title", *req.MetaTitle, 60); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		post.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		if err := validation.ValidateLength("meta description", *req.MetaDescription, 160); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		post.MetaDescription = *req.MetaDescription
	}
	if req.CanonicalURL != nil {
		if *req.CanonicalURL != "" {
			if err := validation.ValidateURL(*req.CanonicalURL); err != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("Invalid canonical URL"))
			}
		}
		post.CanonicalURL = *req.CanonicalURL
	}

	if err := s.posts.Update(ctx, post, req.CategoryIDs, req.TagIDs); err != nil {
		return respondStorageError(c, err, "Post", postID)
	}

	updated, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(updated)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return respondStorageError(c, err, "Post", postID)
	}

	return deleteResponse(c)
}
