package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// The admin endpoints validate their input before touching any
// repository, so a zero-value handler suffices for the failure paths.

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	h := &AdminHandler{}
	for _, role := range []string{"", "user", "Admin", "SUPERUSER"} {
		body := `{"name":"Shop Keeper","email":"o@example.com","address":"","password":"Passw0rd!","role":"` + role + `"}`
		c, rec := postJSON(t, "/v1/admin/users", body)
		require.NoError(t, h.CreateUser(c))
		require.Equal(t, http.StatusBadRequest, rec.Code, "role %q", role)
		require.Contains(t, rec.Body.String(), "unknown role")
	}
}

func TestCreateUserEnforcesPasswordPolicy(t *testing.T) {
	h := &AdminHandler{}
	body := `{"name":"Shop Keeper","email":"o@example.com","address":"","password":"weak","role":"OWNER"}`
	c, rec := postJSON(t, "/v1/admin/users", body)
	require.NoError(t, h.CreateUser(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "VALIDATION")
}

func TestSetUserRoleRejectsBadID(t *testing.T) {
	h := &AdminHandler{}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/v1/admin/users/abc/role", strings.NewReader(`{"role":"ADMIN"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.SetUserRole(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid id")
}

func TestCreateStoreRequiresName(t *testing.T) {
	h := &AdminHandler{}
	c, rec := postJSON(t, "/v1/admin/stores", `{"name":"","address":"12 Oak Rd"}`)
	require.NoError(t, h.CreateStore(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "name required")
}

func TestCreateStoreBoundsAddress(t *testing.T) {
	h := &AdminHandler{}
	c, rec := postJSON(t, "/v1/admin/stores", `{"name":"Oak Store","address":"`+strings.Repeat("x", 401)+`"}`)
	require.NoError(t, h.CreateStore(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "400 characters")
}
