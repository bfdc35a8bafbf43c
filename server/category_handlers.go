package server

import (
	"errors"
	"strconv"

	"inkwell/models"
	"inkwell/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetCategories handles GET /api/categories. Inactive categories are hidden
// unless active_only=false is passed.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	ctx := c.UserContext()
	activeOnly := c.QueryBool("active_only", true)

	cats, err := s.categories.List(ctx, activeOnly)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(cats)
}

// FindCategory handles GET /api/categories/find?id=...&slug=...
func (s *Server) FindCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	idParam := c.Query("id")
	slug := c.Query("slug")

	if idParam == "" && slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewUsageError("Either id or slug must be provided"))
	}

	var (
		cat *models.Category
		err error
	)
	if idParam != "" {
		id, perr := strconv.ParseUint(idParam, 10, 32)
		if perr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid category ID"))
		}
		cat, err = s.categories.GetByID(ctx, uint(id))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Category", id))
		}
	} else {
		cat, err = s.categories.GetBySlug(ctx, slug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundByError("Category", "slug", slug))
		}
	}
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(cat)
}

type categoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsActive    *bool  `json:"is_active"`
}

func (r *categoryRequest) validate() error {
	if r.Name == "" || len(r.Name) > 50 {
		return models.NewValidationError("Name is required and must be at most 50 characters")
	}
	if err := validation.ValidateSlug(r.Slug, 50); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateLength("description", r.Description, 200); err != nil {
		return models.NewValidationError(err.Error())
	}
	if r.Color != "" {
		if err := validation.ValidateHexColor(r.Color); err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	return nil
}

// CreateCategory handles POST /api/categories
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req categoryRequest
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

	cat := &models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Color:       req.Color,
		IsActive:    isActive,
	}

	if err := s.categories.Create(ctx, cat); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(cat)
}

// UpdateCategory handles PUT /api/categories/:id
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	categoryID, err := s.parseID(c, "id", "category ID")
	if err != nil {
		return nil
	}

	var req struct {
		Name        *string `json:"name"`
		Slug        *string `json:"slug"`
		Description *string `json:"description"`
		Color       *string `json:"color"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	cat, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return respondStorageError(c, err, "Category", categoryID)
	}

	if req.Name != nil {
		if *req.Name == "" || len(*req.Name) > 50 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Name must be between 1 and 50 characters"))
		}
		cat.Name = *req.Name
	}
	if req.Slug != nil {
		if err := validation.ValidateSlug(*req.Slug, 50); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		cat.Slug = *req.Slug
	}
	if req.Description != nil {
		if err := validation.ValidateLength("description", *req.Description, 200); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		cat.Description = *req.Description
	}
	if req.Color != nil {
		if *req.Color != "" {
			if err := validation.ValidateHexColor(*req.Color); err != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError(err.Error()))
			}
		}
		cat.Color = *req.Color
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}

	if err := s.categories.Update(ctx, cat); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(cat)
}

// DeleteCategory handles DELETE /api/categories/:id
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	categoryID, err := s.parseID(c, "id", "category ID")
	if err != nil {
		return nil
	}

	if err := s.categories.Delete(ctx, categoryID); err != nil {
		return respondStorageError(c, err, "Category", categoryID)
	}

	return deleteResponse(c)
}
