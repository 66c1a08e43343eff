package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tradejournal/configs"
	"tradejournal/internal/middleware"
)

// WebHandler serves the HTML pages. The pages talk to the JSON API with the
// session cookie set at login.
type WebHandler struct {
	auth configs.AuthConfig
}

// NewWebHandler creates a new WebHandler
func NewWebHandler(auth configs.AuthConfig) *WebHandler {
	return &WebHandler{auth: auth}
}

// Index renders the journal page.
// GET /
func (h *WebHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", map[string]interface{}{
		"Username":    middleware.GetUsername(c),
		"AuthEnabled": h.auth.Enabled(),
		"MultiUser":   h.auth.MultiUser(),
	})
}

// LoginPage renders the login form, or goes straight to the journal when
// authentication is disabled.
// GET /login
func (h *WebHandler) LoginPage(c echo.Context) error {
	if !h.auth.Enabled() {
		return c.Redirect(http.StatusFound, "/")
	}
	return c.Render(http.StatusOK, "login.html", map[string]interface{}{
		"MultiUser": h.auth.MultiUser(),
	})
}

// RegisterPage renders the registration form (invite-code mode only).
// GET /register
func (h *WebHandler) RegisterPage(c echo.Context) error {
	if !h.auth.MultiUser() {
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.Render(http.StatusOK, "register.html", nil)
}

// LogoutPage clears the session cookie and returns to the login form.
// GET /logout
func (h *WebHandler) LogoutPage(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return c.Redirect(http.StatusFound, "/login")
}
