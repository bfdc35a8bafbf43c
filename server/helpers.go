package server

import (
	"errors"

	"inkwell/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// HasMore reports whether another page exists after this one.
func (p Pagination) HasMore(total int64) bool {
	return int64(p.Offset+p.Limit) < total
}

// parsePagination extracts limit and offset query parameters with the given
// default limit. Limits are clamped to [1, 100]; offsets to >= 0. Defaults
// differ per resource (posts/users 10, comments 20/50, media 20, tags 50).
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{Limit: limit, Offset: offset}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param, label string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondStorageError maps a repository failure: record-not-found becomes a
// 404 domain error, anything else surfaces as-is with a 500.
func respondStorageError(c *fiber.Ctx, err error, resource string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError(resource, id))
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
		return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// deleteResponse is the body of every successful delete.
func deleteResponse(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}
