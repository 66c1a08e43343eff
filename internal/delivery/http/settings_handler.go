package http

import (
	"os"

	"github.com/labstack/echo/v4"

	"tradejournal/internal/delivery/http/dto"
	"tradejournal/internal/domain"
)

// SettingsHandler reports and updates the runtime credentials.
type SettingsHandler struct {
	settings domain.SettingsRepository
	isCloud  bool
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settings domain.SettingsRepository, isCloud bool) *SettingsHandler {
	return &SettingsHandler{settings: settings, isCloud: isCloud}
}

// Get returns the settings status. Credentials themselves never leave the
// server; the API key is reduced to a short preview.
// GET /api/settings
func (h *SettingsHandler) Get(c echo.Context) error {
	s, err := h.settings.Load(c.Request().Context())
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to load settings", err)
	}

	view := dto.SettingsView{
		HasKey:              s.APIKey != "",
		KeyPreview:          keyPreview(s.APIKey),
		KeyFromEnv:          os.Getenv("ANTHROPIC_API_KEY") != "",
		IsCloud:             h.isCloud,
		HasCloudinary:       s.HasCloudinary(),
		CloudinaryCloudName: s.CloudinaryCloudName,
		CloudinaryFromEnv:   os.Getenv("CLOUDINARY_CLOUD_NAME") != "",
	}
	return SuccessResponse(c, view)
}

// Update merges the submitted credentials into the settings file. In cloud
// mode the write is skipped and the caller is told to use environment
// variables instead.
// POST /api/settings
func (h *SettingsHandler) Update(c echo.Context) error {
	var req dto.SettingsUpdateRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	update := &domain.Settings{
		APIKey:              req.APIKey,
		CloudinaryCloudName: req.CloudinaryCloudName,
		CloudinaryAPIKey:    req.CloudinaryAPIKey,
		CloudinaryAPISecret: req.CloudinaryAPISecret,
	}
	if err := h.settings.Save(c.Request().Context(), update); err != nil {
		return InternalServerErrorResponse(c, "Failed to save settings", err)
	}

	if h.isCloud {
		return SuccessMessageResponse(c, "Settings are managed through environment variables in cloud mode", nil)
	}
	return SuccessMessageResponse(c, "Settings saved", nil)
}

// keyPreview renders the first characters of a key followed by an ellipsis.
func keyPreview(key string) string {
	if key == "" {
		return ""
	}
	r := []rune(key)
	if len(r) <= 10 {
		return string(r) + "..."
	}
	return string(r[:10]) + "..."
}
