package server

import (
	"inkwell/models"
	"inkwell/repository"
	"inkwell/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	pag := parsePagination(c, 10)
	filter := repository.UserFilter{Search: c.Query("search")}

	users, total, err := s.users.List(ctx, filter, pag.Limit, pag.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"users":    users,
		"total":    total,
		"has_more": pag.HasMore(total),
	})
}

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return respondStorageError(c, err, "User", userID)
	}

	return c.JSON(user)
}

// CreateUser handles POST /api/users. Passwords are stored as bcrypt hashes,
// never verbatim.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Email     string      `json:"email"`
		Username  string      `json:"username"`
		Password  string      `json:"password"`
		FirstName string      `json:"first_name"`
		LastName  string      `json:"last_name"`
		Bio       string      `json:"bio"`
		Role      models.Role `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateLength("first name", req.FirstName, 50); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateLength("last name", req.LastName, 50); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateLength("bio", req.Bio, 500); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if req.Role == "" {
		req.Role = models.RoleSubscriber
	}
	if !req.Role.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid role"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	user := &models.User{
		Email:     req.Email,
		Username:  req.Username,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
		IsActive:  true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser handles PUT /api/users/:id. Only fields present in the body are
// touched; passwords are not updatable through this route.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	var req struct {
		Email     *string      `json:"email"`
		Username  *string      `json:"username"`
		FirstName *string      `json:"first_name"`
		LastName  *string      `json:"last_name"`
		Bio       *string      `json:"bio"`
		Avatar    *string      `json:"avatar"`
		Role      *models.Role `json:"role"`
		IsActive  *bool        `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return respondStorageError(c, err, "User", userID)
	}

	if req.Email != nil {
		if err := validation.ValidateEmail(*req.Email); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		user.Email = *req.Email
	}
	if req.Username != nil {
		if err := validation.ValidateUsername(*req.Username); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		user.Username = *req.Username
	}
	if req.FirstName != nil {
		if err := validation.ValidateLength("first name", *req.FirstName, 50); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		if err := validation.ValidateLength("last name", *req.LastName, 50); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		if err := validation.ValidateLength("bio", *req.Bio, 500); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		user.Bio = *req.Bio
	}
	if req.Avatar != nil {
		if *req.Avatar != "" {
			if err := validation.ValidateURL(*req.Avatar); err != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("Invalid avatar URL"))
			}
		}
		user.Avatar = *req.Avatar
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid role"))
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return respondStorageError(c, err, "User", userID)
	}

	return deleteResponse(c)
}
