package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// Registration validation happens entirely before persistence; a
// zero-value handler proves no repository call is reached on the
// failure paths.

func TestRegisterRejectsShortName(t *testing.T) {
	h := &AuthHandler{}
	// 19 characters: one below the minimum.
	body := `{"name":"` + strings.Repeat("a", 19) + `","email":"u@example.com","address":"","password":"Passw0rd!"}`
	c, rec := postJSON(t, "/v1/auth/register", body)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "between 20 and 60")
}

func TestRegisterRejectsLongAddress(t *testing.T) {
	h := &AuthHandler{}
	body := `{"name":"` + strings.Repeat("a", 20) + `","email":"u@example.com","address":"` +
		strings.Repeat("x", 401) + `","password":"Passw0rd!"}`
	c, rec := postJSON(t, "/v1/auth/register", body)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "400 characters")
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	h := &AuthHandler{}
	for _, pw := range []string{"short!A", "nouppercase1!", "NoSymbol123"} {
		body := `{"name":"` + strings.Repeat("a", 20) + `","email":"u@example.com","address":"","password":"` + pw + `"}`
		c, rec := postJSON(t, "/v1/auth/register", body)
		require.NoError(t, h.Register(c))
		require.Equal(t, http.StatusBadRequest, rec.Code, "password %q", pw)
		require.Contains(t, rec.Body.String(), "VALIDATION")
	}
}

func TestRegisterRequiresCredentials(t *testing.T) {
	h := &AuthHandler{}
	c, rec := postJSON(t, "/v1/auth/register", `{"name":"`+strings.Repeat("a", 20)+`"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangePasswordValidatesPolicy(t *testing.T) {
	h := &AuthHandler{}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/v1/users/password", strings.NewReader(`{"newPassword":"weak"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(3))

	require.NoError(t, h.ChangePassword(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "VALIDATION")
}

func TestChangePasswordRequiresIdentity(t *testing.T) {
	h := &AuthHandler{}
	c, rec := postJSON(t, "/v1/users/password", `{"newPassword":"Passw0rd!"}`)
	require.NoError(t, h.ChangePassword(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
