package middleware

// identity.go defines the context keys under which JWTAuth stores the
// verified caller, plus the typed accessors handlers and sibling
// middleware use to read them back.

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating-platform/internal/model"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// ErrNoIdentity is returned by CallerID when the request context
// carries no verified user, i.e. JWTAuth did not run on this route.
var ErrNoIdentity = errors.New("no authenticated user in context")

// CallerID returns the authenticated user's id from the context.
func CallerID(c echo.Context) (uint64, error) {
	if id, ok := c.Get(ctxUserID).(uint64); ok && id != 0 {
		return id, nil
	}
	return 0, ErrNoIdentity
}

// CallerRole returns the authenticated user's role from the context.
// The boolean is false on unauthenticated routes.
func CallerRole(c echo.Context) (model.Role, bool) {
	role, ok := c.Get(ctxRole).(model.Role)
	return role, ok
}

// currentUserKey renders the caller as a cache/limiter key segment;
// "anon" for unauthenticated requests.
func currentUserKey(c echo.Context) string {
	if id, ok := c.Get(ctxUserID).(uint64); ok && id != 0 {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
