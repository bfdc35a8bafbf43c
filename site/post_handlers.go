package site

import (
	"fmt"
	"regexp"
	"strings"

	"inkwell/middleware"
	"inkwell/models"
	"inkwell/repository"

	"github.com/gofiber/fiber/v2"
)

// sitePageLimit caps the page-route listing; the public site renders a single
// page of posts and never paginates.
const sitePageLimit = 100

// GetPosts lists published posts for the public site, optionally narrowed by
// a text search over title/content and by a tag slug. An unknown tag slug
// yields an empty list, not an error.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	filter := repository.PostFilter{
		Published:              true,
		Search:                 c.Query("search"),
		SearchTitleContentOnly: true,
	}

	if tagSlug := c.Query("tag"); tagSlug != "" {
		tag, err := s.tags.GetBySlug(c.Context(), tagSlug)
		if err != nil {
			if models.IsNotFound(err) {
				return c.JSON([]*models.Post{})
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		filter.TagID = &tag.ID
	}

	posts, _, err := s.posts.List(c.Context(), filter, sitePageLimit, 0)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(posts)
}

// GetPost returns a single post by ID, any status.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
	}

	post, err := s.posts.GetByID(c.Context(), uint(id))
	if err != nil {
		if models.IsNotFound(err) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Post", uint(id)))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(post)
}

type sitePostRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Published bool     `json:"published"`
	Tags      []string `json:"tags"`
}

// CreatePost creates a post authored by the verified token holder. Tags are
// given as names and upserted by slug; published posts get a publish
// timestamp of now.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	authorID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	var req sitePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}

	slug, err := s.uniqueSlug(c, req.Title)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	post := &models.Post{
		Title:    req.Title,
		Slug:     slug,
		Content:  req.Content,
		Status:   models.PostDraft,
		AuthorID: authorID,
	}
	if req.Published {
		post.Status = models.PostPublished
		publishedAt := now()
		post.PublishedAt = &publishedAt
	}

	tagIDs, err := s.resolveTagNames(c, req.Tags)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if err := s.posts.Create(c.Context(), post, nil, tagIDs); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	created, err := s.posts.GetByID(c.Context(), post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

type sitePostUpdateRequest struct {
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Published *bool     `json:"published"`
	Tags      *[]string `json:"tags"`
}

// UpdatePost applies the fields present in the body. A tags array replaces
// the post's tag set; omitting it leaves the set untouched.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
	}

	var req sitePostUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.posts.GetByID(c.Context(), uint(id))
	if err != nil {
		if models.IsNotFound(err) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Post", uint(id)))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Title cannot be empty"))
		}
		post.Title = title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Published != nil {
		if *req.Published {
			post.Status = models.PostPublished
			if post.PublishedAt == nil {
				publishedAt := now()
				post.PublishedAt = &publishedAt
			}
		} else {
			post.Status = models.PostDraft
			post.PublishedAt = nil
		}
	}

	var tagIDs *[]uint
	if req.Tags != nil {
		resolved, err := s.resolveTagNames(c, *req.Tags)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		tagIDs = &resolved
	}

	if err := s.posts.Update(c.Context(), post, nil, tagIDs); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	updated, err := s.posts.GetByID(c.Context(), post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(updated)
}

// DeletePost removes a post. The site responds 204 with no body.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
	}

	if err := s.posts.Delete(c.Context(), uint(id)); err != nil {
		if models.IsNotFound(err) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Post", uint(id)))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// resolveTagNames upserts tags by slugified name and returns their IDs.
func (s *Server) resolveTagNames(c *fiber.Ctx, names []string) ([]uint, error) {
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag := &models.Tag{
			Name:     name,
			Slug:     slugify(name),
			IsActive: true,
		}
		if err := s.tags.UpsertBySlug(c.Context(), tag); err != nil {
			return nil, err
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lowercases s and collapses runs of non-alphanumerics into single
// hyphens.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// uniqueSlug derives a slug from the title and suffixes a counter while the
// slug is taken. The page routes carry no slug of their own, so collisions
// are resolved here rather than rejected.
func (s *Server) uniqueSlug(c *fiber.Ctx, title string) (string, error) {
	base := slugify(title)
	if base == "" {
		base = "post"
	}
	slug := base
	for i := 2; ; i++ {
		_, err := s.posts.GetBySlug(c.Context(), slug)
		if models.IsNotFound(err) {
			return slug, nil
		}
		if err != nil {
			return "", err
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
