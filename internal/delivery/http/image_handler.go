package http

import (
	"strings"

	"github.com/labstack/echo/v4"

	"tradejournal/internal/delivery/http/dto"
	"tradejournal/internal/domain"
)

// ImageHandler uploads chart screenshots to the configured image host.
type ImageHandler struct {
	uploader domain.ImageUploader
	settings domain.SettingsRepository
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(uploader domain.ImageUploader, settings domain.SettingsRepository) *ImageHandler {
	return &ImageHandler{uploader: uploader, settings: settings}
}

// Upload accepts a base64 image (optionally a data: URL) and uploads it.
// POST /api/upload-image
func (h *ImageHandler) Upload(c echo.Context) error {
	var req dto.UploadImageRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.Image == "" {
		return BadRequestResponse(c, "No image provided")
	}

	s, err := h.settings.Load(c.Request().Context())
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to load settings", err)
	}
	if !s.HasCloudinary() {
		return BadRequestResponse(c, "Image hosting is not configured")
	}

	result, err := h.uploader.Upload(c.Request().Context(), s.Credentials(), stripDataURL(req.Image))
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to upload image", err)
	}
	return SuccessResponse(c, result)
}

// stripDataURL drops a leading "data:image/...;base64," prefix if present.
func stripDataURL(image string) string {
	if !strings.HasPrefix(image, "data:") {
		return image
	}
	if i := strings.Index(image, ","); i >= 0 {
		return image[i+1:]
	}
	return image
}
