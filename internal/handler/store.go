// This file defines the authenticated store browsing endpoints.
// Listings are role-aware: normal users get each store annotated with
// their own score so the client can render "your rating" without a
// second round trip.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating-platform/internal/middleware"
	"github.com/iliyamo/store-rating-platform/internal/model"
	"github.com/iliyamo/store-rating-platform/internal/repository"
)

// StoreHandler aggregates repositories needed for store browsing.
type StoreHandler struct {
	Stores *repository.StoreRepo
}

func NewStoreHandler(stores *repository.StoreRepo) *StoreHandler {
	return &StoreHandler{Stores: stores}
}

// storeEntry is a store as rendered in list and detail responses.
// OverallRating is null until the first rating lands; MyRating is
// present only for normal users and null when they have not rated the
// store.
type storeEntry struct {
	ID            uint64   `json:"id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	OverallRating *float64 `json:"overallRating"`
	MyRating      *uint8   `json:"myRating,omitempty"`
}

// ListStores returns all stores. For the USER role each entry carries
// the caller's own score; owners and admins get the plain catalog.
func (h *StoreHandler) ListStores(c echo.Context) error {
	ctx := c.Request().Context()
	role, _ := middleware.CallerRole(c)

	if role == model.RoleUser {
		uid, err := middleware.CallerID(c)
		if err != nil {
			return jsonError(c, http.StatusUnauthorized, CodeAuthentication, "unauthorized")
		}
		entries, err := h.Stores.ListWithUserScores(ctx, uid)
		if err != nil {
			return jsonError(c, http.StatusInternalServerError, CodeInternal, "database error")
		}
		out := make([]storeEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, storeEntry{
				ID:            e.Store.ID,
				Name:          e.Store.Name,
				Address:       e.Store.Address,
				OverallRating: e.Store.OverallRating,
				MyRating:      e.UserScore,
			})
		}
		return c.JSON(http.StatusOK, echo.Map{"items": out})
	}

	stores, err := h.Stores.ListAll(ctx)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "database error")
	}
	out := make([]storeEntry, 0, len(stores))
	for _, s := range stores {
		out = append(out, storeEntry{ID: s.ID, Name: s.Name, Address: s.Address, OverallRating: s.OverallRating})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetStore returns a single store by id.
func (h *StoreHandler) GetStore(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "invalid id")
	}
	s, err := h.Stores.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return jsonError(c, http.StatusNotFound, CodeNotFound, "store not found")
		}
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "database error")
	}
	return c.JSON(http.StatusOK, storeEntry{ID: s.ID, Name: s.Name, Address: s.Address, OverallRating: s.OverallRating})
}
