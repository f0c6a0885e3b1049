package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/store-rating-platform/internal/model"
)

func invoke(mw echo.MiddlewareFunc, prime func(echo.Context)) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if prime != nil {
		prime(c)
	}
	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	return rec, h(c)
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	rec, err := invoke(RequireRole(model.RoleAdmin), func(c echo.Context) {
		c.Set(ctxRole, model.RoleAdmin)
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleDeniesOtherRole(t *testing.T) {
	rec, err := invoke(RequireRole(model.RoleAdmin), func(c echo.Context) {
		c.Set(ctxRole, model.RoleUser)
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "AUTHORIZATION")
}

func TestRequireRoleDeniesMissingRole(t *testing.T) {
	rec, err := invoke(RequireRole(model.RoleAdmin, model.RoleOwner), nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleDeniesUnknownRoleValue(t *testing.T) {
	// A value outside the closed set can never match a listed role.
	rec, err := invoke(RequireRole(model.RoleAdmin), func(c echo.Context) {
		c.Set(ctxRole, model.Role("SUPERUSER"))
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleMultipleRoles(t *testing.T) {
	for _, role := range []model.Role{model.RoleUser, model.RoleOwner} {
		rec, err := invoke(RequireRole(model.RoleUser, model.RoleOwner), func(c echo.Context) {
			c.Set(ctxRole, role)
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
