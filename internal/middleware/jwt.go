package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating-platform/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer session
// token and injects the verified identity into the request context.
// The provided secret must match the one used when issuing tokens.
// Handlers behind this middleware read the caller via CallerID and
// CallerRole; the claims are typed here once so downstream code never
// type-switches on raw JWT values. Missing, malformed, expired or
// badly signed tokens all produce the same 401 envelope.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token", "code": "AUTHENTICATION"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseSessionToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token", "code": "AUTHENTICATION"})
			}

			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxRole, claims.Role)
			return next(c)
		}
	}
}
