package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating-platform/internal/model"
)

// RequireRole returns a middleware that enforces that the
// authenticated user holds one of the specified roles. Roles are the
// closed model.Role set, so an unrecognized value in the token claim
// can never match and falls to the deny branch instead of slipping
// through a default path. It assumes JWTAuth ran earlier and stored
// the typed role in the context. Denials are 403 with the
// AUTHORIZATION code; the policy gate runs before any repository
// call, so a denied request has no side effects.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ctxRole).(model.Role)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden", "code": "AUTHORIZATION"})
			}
			return next(c)
		}
	}
}
