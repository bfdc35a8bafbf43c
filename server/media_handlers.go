package server

import (
	"strconv"

	"inkwell/models"
	"inkwell/repository"
	"inkwell/validation"

	"github.com/gofiber/fiber/v2"
)

// GetMedia handles GET /api/media — the media library listing.
func (s *Server) GetMedia(c *fiber.Ctx) error {
	ctx := c.UserContext()
	pag := parsePagination(c, 20)

	var filter repository.MediaFilter
	if raw := c.Query("uploaded_by_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid uploader ID"))
		}
		uploaderID := uint(id)
		filter.UploadedByID = &uploaderID
	}
	filter.Search = c.Query("search")

	media, total, err := s.media.List(ctx, filter, pag.Limit, pag.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"media":    media,
		"total":    total,
		"has_more": pag.HasMore(total),
	})
}

// GetMediaItem handles GET /api/media/:id
func (s *Server) GetMediaItem(c *fiber.Ctx) error {
	ctx := c.UserContext()
	mediaID, err := s.parseID(c, "id", "media ID")
	if err != nil {
		return nil
	}

	media, err := s.media.GetByID(ctx, mediaID)
	if err != nil {
		return respondStorageError(c, err, "Media", mediaID)
	}

	return c.JSON(media)
}

// CreateMedia handles POST /api/media. This records metadata for a file that
// already lives at URL; the upload itself happens elsewhere.
func (s *Server) CreateMedia(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Filename     string `json:"filename"`
		OriginalName string `json:"original_name"`
		MimeType     string `json:"mime_type"`
		Size         int64  `json:"size"`
		URL          string `json:"url"`
		Alt          string `json:"alt"`
		Caption      string `json:"caption"`
		UploadedByID uint   `json:"uploaded_by_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Filename == "" || req.OriginalName == "" || req.MimeType == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Filename, original name and MIME type are required"))
	}
	if req.Size <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Size must be a positive integer"))
	}
	if err := validation.ValidateURL(req.URL); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid media URL"))
	}
	if req.UploadedByID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Uploader ID is required"))
	}

	media := &models.Media{
		Filename:     req.Filename,
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		Size:         req.Size,
		URL:          req.URL,
		Alt:          req.Alt,
		Caption:      req.Caption,
		UploadedByID: req.UploadedByID,
	}

	if err := s.media.Create(ctx, media); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	created, err := s.media.GetByID(ctx, media.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateMedia handles PUT /api/media/:id. Only alt text and caption are
// editable; the stored file metadata is immutable.
func (s *Server) UpdateMedia(c *fiber.Ctx) error {
	ctx := c.UserContext()
	mediaID, err := s.parseID(c, "id", "media ID")
	if err != nil {
		return nil
	}

	var req struct {
		Alt     *string `json:"alt"`
		Caption *string `json:"caption"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	media, err := s.media.GetByID(ctx, mediaID)
	if err != nil {
		return respondStorageError(c, err, "Media", mediaID)
	}

	if req.Alt != nil {
		media.Alt = *req.Alt
	}
	if req.Caption != nil {
		media.Caption = *req.Caption
	}

	if err := s.media.Update(ctx, media); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(media)
}

// DeleteMedia handles DELETE /api/media/:id
func (s *Server) DeleteMedia(c *fiber.Ctx) error {
	ctx := c.UserContext()
	mediaID, err := s.parseID(c, "id", "media ID")
	if err != nil {
		return nil
	}

	if err := s.media.Delete(ctx, mediaID); err != nil {
		return respondStorageError(c, err, "Media", mediaID)
	}

	return deleteResponse(c)
}
