package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating-platform/internal/handler"
	"github.com/iliyamo/store-rating-platform/internal/middleware"
	"github.com/iliyamo/store-rating-platform/internal/model"
)

// RegisterOwner registers OWNER-scoped endpoints under /v1. All
// routes require a valid JWT and the OWNER role; the handler further
// checks that the requested store is the caller's assignment.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleOwner),
	)
	g.GET("/owner/stores/:id/ratings", o.GetStoreReviews)
}
