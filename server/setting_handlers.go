package server

import (
	"time"

	"inkwell/cache"
	"inkwell/models"

	"github.com/gofiber/fiber/v2"
)

const (
	settingsCacheKey = "settings:all"
	settingsCacheTTL = 5 * time.Minute
)

// GetSettings handles GET /api/settings and returns the whole store as a flat
// key→value map. The map is served cache-aside from Redis when available.
func (s *Server) GetSettings(c *fiber.Ctx) error {
	ctx := c.UserContext()

	settings := make(map[string]string)
	err := cache.CacheAside(ctx, s.redis, settingsCacheKey, &settings, settingsCacheTTL, func() error {
		rows, err := s.settings.List(ctx)
		if err != nil {
			return err
		}
		for _, row := range rows {
			settings[row.Key] = row.Value
		}
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(settings)
}

// GetSetting handles GET /api/settings/:key
func (s *Server) GetSetting(c *fiber.Ctx) error {
	ctx := c.UserContext()
	key := c.Params("key")

	setting, err := s.settings.GetByKey(ctx, key)
	if err != nil {
		return respondStorageError(c, err, "Setting", key)
	}

	return c.JSON(setting)
}

// SetSetting handles PUT /api/settings/:key — create-or-update, idempotent.
func (s *Server) SetSetting(c *fiber.Ctx) error {
	ctx := c.UserContext()
	key := c.Params("key")

	var req struct {
		Value string `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	setting, err := s.settings.Set(ctx, key, req.Value)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	cache.Invalidate(ctx, s.redis, settingsCacheKey)
	return c.JSON(setting)
}

// SetSettings handles PUT /api/settings — batch upsert. Duplicate keys within
// one batch collapse to the last value; the individual upserts run
// concurrently and any failure fails the whole call.
func (s *Server) SetSettings(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if len(req) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("At least one setting is required"))
	}

	pairs := make(map[string]string, len(req))
	for _, item := range req {
		if item.Key == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Setting keys must not be empty"))
		}
		pairs[item.Key] = item.Value
	}

	results, err := s.settings.SetMany(ctx, pairs)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	cache.Invalidate(ctx, s.redis, settingsCacheKey)
	return c.JSON(results)
}

// DeleteSetting handles DELETE /api/settings/:key
func (s *Server) DeleteSetting(c *fiber.Ctx) error {
	ctx := c.UserContext()
	key := c.Params("key")

	if err := s.settings.Delete(ctx, key); err != nil {
		return respondStorageError(c, err, "Setting", key)
	}

	cache.Invalidate(ctx, s.redis, settingsCacheKey)
	return deleteResponse(c)
}
