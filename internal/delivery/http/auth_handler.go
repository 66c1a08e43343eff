package http

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"tradejournal/configs"
	"tradejournal/internal/delivery/http/dto"
	"tradejournal/internal/domain"
	"tradejournal/internal/middleware"
)

const sessionCookieMaxAge = 86400 // one day, matches token lifetime

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,}$`)

// AuthHandler handles login, registration and logout. Two modes exist:
// invite-code registration with per-user accounts, and a legacy single
// shared password that maps everyone to the default user.
type AuthHandler struct {
	users domain.UserRepository
	auth  configs.AuthConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users domain.UserRepository, auth configs.AuthConfig) *AuthHandler {
	return &AuthHandler{users: users, auth: auth}
}

// Login authenticates a user and sets the session cookie.
// POST /api/login
func (h *AuthHandler) Login(c echo.Context) error {
	if !h.auth.Enabled() {
		return BadRequestResponse(c, "Authentication is not enabled")
	}

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.Password == "" {
		return BadRequestResponse(c, "Password is required")
	}

	if !h.auth.MultiUser() {
		return h.legacyLogin(c, req.Password)
	}

	if req.Username == "" {
		return BadRequestResponse(c, "Username is required")
	}

	user, err := h.users.GetByUsername(c.Request().Context(), req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return UnauthorizedResponse(c, "Invalid username or password")
		}
		return InternalServerErrorResponse(c, "Failed to look up user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return UnauthorizedResponse(c, "Invalid username or password")
	}

	return h.startSession(c, user.ID, user.Username)
}

// legacyLogin checks the shared application password and signs everyone in as
// the default user.
func (h *AuthHandler) legacyLogin(c echo.Context, password string) error {
	if password != h.auth.AppPassword {
		return UnauthorizedResponse(c, "Invalid password")
	}
	return h.startSession(c, uuid.Nil, domain.DefaultUsername)
}

// Register creates a new account in invite-code mode and signs it in.
// POST /api/register
func (h *AuthHandler) Register(c echo.Context) error {
	if !h.auth.MultiUser() {
		return BadRequestResponse(c, "Registration is not enabled")
	}

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.InviteCode != h.auth.InviteCode {
		return UnauthorizedResponse(c, "Invalid invite code")
	}
	if !usernamePattern.MatchString(req.Username) {
		return BadRequestResponse(c, "Username must be at least 3 characters: letters, numbers, - or _")
	}
	if len(req.Password) < 4 {
		return BadRequestResponse(c, "Password must be at least 4 characters")
	}
	if req.Password != req.ConfirmPassword {
		return BadRequestResponse(c, "Passwords do not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to hash password", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.users.Create(c.Request().Context(), user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return BadRequestResponse(c, "Username is already taken")
		}
		return InternalServerErrorResponse(c, "Failed to create user", err)
	}

	return h.startSession(c, user.ID, user.Username)
}

// Logout clears the session cookie.
// POST /api/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return SuccessMessageResponse(c, "Logged out", nil)
}

// startSession issues a token, sets the session cookie and reports the user.
func (h *AuthHandler) startSession(c echo.Context, userID uuid.UUID, username string) error {
	token, err := middleware.GenerateJWT(userID, username)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to create session", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return SuccessResponse(c, map[string]string{
		"username": username,
		"token":    token,
	})
}
