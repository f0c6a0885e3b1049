package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating-platform/internal/handler"
	"github.com/iliyamo/store-rating-platform/internal/middleware"
	"github.com/iliyamo/store-rating-platform/internal/model"
)

// RegisterBrowse registers the authenticated store browsing endpoints
// under /v1. All roles may list and fetch stores; the listing handler
// annotates entries with the caller's own rating for normal users.
// cacheMW is the optional Redis response cache; pass nil to disable.
func RegisterBrowse(e *echo.Echo, h *handler.StoreHandler, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleOwner, model.RoleAdmin),
	)
	if cacheMW != nil {
		g.GET("/stores", h.ListStores, cacheMW)
		g.GET("/stores/:id", h.GetStore, cacheMW)
	} else {
		g.GET("/stores", h.ListStores)
		g.GET("/stores/:id", h.GetStore)
	}
}

// RegisterUser registers endpoints reserved for the USER role. Only
// normal users submit ratings; owners and administrators are denied
// before any handler logic runs.
func RegisterUser(e *echo.Echo, h *handler.RatingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser),
	)
	g.POST("/ratings", h.SubmitRating)
}
