// This file defines the store-owner dashboard endpoint. Ownership is
// resolved through the caller's user row: users.store_id names the
// store an owner reports on, and a request for any other store is an
// authorization failure, not a lookup failure.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating-platform/internal/middleware"
	"github.com/iliyamo/store-rating-platform/internal/repository"
)

// OwnerHandler bundles repositories for the owner dashboard.
type OwnerHandler struct {
	Users   *repository.UserRepo
	Ratings *repository.RatingRepo
}

func NewOwnerHandler(users *repository.UserRepo, ratings *repository.RatingRepo) *OwnerHandler {
	if users == nil || ratings == nil {
		panic("nil repository passed to NewOwnerHandler")
	}
	return &OwnerHandler{Users: users, Ratings: ratings}
}

// GetStoreReviews returns every (reviewer name, email, score) tuple
// for the owner's assigned store plus the current aggregate. The
// check against the caller's assignment happens before any rating
// read.
func (h *OwnerHandler) GetStoreReviews(c echo.Context) error {
	uid, err := middleware.CallerID(c)
	if err != nil {
		return jsonError(c, http.StatusUnauthorized, CodeAuthentication, "unauthorized")
	}
	storeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "invalid id")
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return jsonError(c, http.StatusUnauthorized, CodeAuthentication, "unauthorized")
		}
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "database error")
	}
	if u.StoreID == nil || *u.StoreID != storeID {
		return jsonError(c, http.StatusForbidden, CodeAuthorization, "not assigned to this store")
	}

	reviews, avg, err := h.Ratings.ListForStore(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return jsonError(c, http.StatusNotFound, CodeNotFound, "store not found")
		}
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "database error")
	}
	if reviews == nil {
		reviews = []repository.StoreReview{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reviewers":     reviews,
		"averageRating": avg, // null until the store has ratings
	})
}
