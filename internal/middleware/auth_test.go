package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tradejournal/configs"
	"tradejournal/internal/domain"
)

func TestJWTRoundTrip(t *testing.T) {
	id := uuid.New()
	token, err := GenerateJWT(id, "alice")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT failed: %v", err)
	}
	if claims.UserID != id || claims.Username != "alice" {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	if _, err := ParseJWT("not.a.token"); err == nil {
		t.Fatalf("expected an error for a malformed token")
	}
}

func runAuth(t *testing.T, auth configs.AuthConfig, setup func(*http.Request)) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/list-entries", nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var username string
	handler := AuthRequired(auth)(func(c echo.Context) error {
		username = GetUsername(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, username
}

func TestAuthDisabledUsesDefaultUser(t *testing.T) {
	rec, username := runAuth(t, configs.AuthConfig{}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if username != domain.DefaultUsername {
		t.Errorf("expected default user, got %q", username)
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	rec, _ := runAuth(t, configs.AuthConfig{InviteCode: "code"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("API request without a token should get 401, got %d", rec.Code)
	}
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	token, _ := GenerateJWT(uuid.New(), "alice")
	rec, username := runAuth(t, configs.AuthConfig{InviteCode: "code"}, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if username != "alice" {
		t.Errorf("expected alice, got %q", username)
	}
}

func TestAuthAcceptsCookie(t *testing.T) {
	token, _ := GenerateJWT(uuid.New(), "bob")
	rec, username := runAuth(t, configs.AuthConfig{AppPassword: "pw"}, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "token", Value: token})
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if username != "bob" {
		t.Errorf("expected bob, got %q", username)
	}
}

func TestAuthRedirectsPagesToLogin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := AuthRequired(configs.AuthConfig{InviteCode: "code"})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}
