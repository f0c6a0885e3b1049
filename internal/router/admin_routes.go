package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating-platform/internal/handler"
	"github.com/iliyamo/store-rating-platform/internal/middleware"
	"github.com/iliyamo/store-rating-platform/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
// All routes require a valid JWT and the ADMIN role; the role gate
// runs before any repository call so denied requests have no side
// effects.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Users ----
	g.GET("/users", a.ListUsers)
	g.POST("/users", a.CreateUser)
	g.PATCH("/users/:id/role", a.SetUserRole)
	g.PATCH("/users/:id/store", a.AssignUserToStore)

	// ---- Stores ----
	g.POST("/stores", a.CreateStore)
	g.PUT("/stores/:id", a.UpdateStore)
	g.PATCH("/stores/:id", a.UpdateStore) // allow partial-style updates via PATCH as well
	g.DELETE("/stores/:id", a.DeleteStore)

	// ---- Dashboard ----
	g.GET("/stats", a.GetStats)
}
