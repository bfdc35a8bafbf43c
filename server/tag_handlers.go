package server

import (
	"errors"
	"strconv"

	"inkwell/models"
	"inkwell/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetTags handles GET /api/tags
func (s *Server) GetTags(c *fiber.Ctx) error {
	ctx := c.UserContext()
	activeOnly := c.QueryBool("active_only", true)
	pag := parsePagination(c, 50)

	tags, err := s.tags.List(ctx, activeOnly, pag.Limit)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(tags)
}

// FindTag handles GET /api/tags/find?id=...&slug=...
func (s *Server) FindTag(c *fiber.Ctx) error {
	ctx := c.UserContext()
	idParam := c.Query("id")
	slug := c.Query("slug")

	if idParam == "" && slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewUsageError("Either id or slug must be provided"))
	}

	var (
		tag *models.Tag
		err error
	)
	if idParam != "" {
		id, perr := strconv.ParseUint(idParam, 10, 32)
		if perr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid tag ID"))
		}
		tag, err = s.tags.GetByID(ctx, uint(id))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Tag", id))
		}
	} else {
		tag, err = s.tags.GetBySlug(ctx, slug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundByError("Tag", "slug", slug))
		}
	}
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(tag)
}

type tagRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Color    string `json:"color"`
	IsActive *bool  `json:"is_active"`
}

func (r *tagRequest) validate() error {
	if r.Name == "" || len(r.Name) > 50 {
		return models.NewValidationError("Name is required and must be at most 50 characters")
	}
	if err := validation.ValidateSlug(r.Slug, 50); err != nil {
		return models.NewValidationError(err.Error())
	}
	if r.Color != "" {
		if err := validation.ValidateHexColor(r.Color); err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	return nil
}

// CreateTag handles POST /api/tags
func (s *Server) CreateTag(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req tagRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := req.validate(); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	tag := &models.Tag{
		Name:     req.Name,
		Slug:     req.Slug,
		Color:    req.Color,
		IsActive: isActive,
	}

	if err := s.tags.Create(ctx, tag); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(tag)
}

// UpdateTag handles PUT /api/tags/:id
func (s *Server) UpdateTag(c *fiber.Ctx) error {
	ctx := c.UserContext()
	tagID, err := s.parseID(c, "id", "tag ID")
	if err != nil {
		return nil
	}

	var req struct {
		Name     *string `json:"name"`
		Slug     *string `json:"slug"`
		Color    *string `json:"color"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tag, err := s.tags.GetByID(ctx, tagID)
	if err != nil {
		return respondStorageError(c, err, "Tag", tagID)
	}

	if req.Name != nil {
		if *req.Name == "" || len(*req.Name) > 50 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Name must be between 1 and 50 characters"))
		}
		tag.Name = *req.Name
	}
	if req.Slug != nil {
		if err := validation.ValidateSlug(*req.Slug, 50); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		tag.Slug = *req.Slug
	}
	if req.Color != nil {
		if *req.Color != "" {
			if err := validation.ValidateHexColor(*req.Color); err != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError(err.Error()))
			}
		}
		tag.Color = *req.Color
	}
	if req.IsActive != nil {
		tag.IsActive = *req.IsActive
	}

	if err := s.tags.Update(ctx, tag); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(tag)
}

// DeleteTag handles DELETE /api/tags/:id
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	ctx := c.UserContext()
	tagID, err := s.parseID(c, "id", "tag ID")
	if err != nil {
		return nil
	}

	if err := s.tags.Delete(ctx, tagID); err != nil {
		return respondStorageError(c, err, "Tag", tagID)
	}

	return deleteResponse(c)
}
