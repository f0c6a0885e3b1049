// This file defines the administrator endpoints: the user directory,
// store catalog mutations and the stats dashboard. Everything here is
// mounted behind RequireRole(ADMIN).
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating-platform/internal/config"
	"github.com/iliyamo/store-rating-platform/internal/model"
	"github.com/iliyamo/store-rating-platform/internal/repository"
	"github.com/iliyamo/store-rating-platform/internal/utils"
)

// AdminHandler bundles the repositories administrators operate on.
type AdminHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Stores *repository.StoreRepo
	Stats  *repository.StatsRepo
}

func NewAdminHandler(cfg config.Config, users *repository.UserRepo, stores *repository.StoreRepo, stats *repository.StatsRepo) *AdminHandler {
	if users == nil || stores == nil || stats == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Cfg: cfg, Users: users, Stores: stores, Stats: stats}
}

// ----- DTOs -----

type createUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
type setRoleReq struct {
	Role string `json:"role"`
}
type assignStoreReq struct {
	StoreID *uint64 `json:"storeId"` // null clears the assignment
}
type storeReq struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type userEntry struct {
	ID      uint64  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Role    string  `json:"role"`
	StoreID *uint64 `json:"storeId"`
}

// ListUsers returns the full user directory without password hashes.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	users, err := h.Users.List(ctx)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "database error")
	}
	out := make([]userEntry, 0, len(users))
	for _, u := range users {
		out = append(out, userEntry{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role.String(), StoreID: u.StoreID})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateUser creates an account with an explicitly chosen role. The
// address and password policies match self-registration; the name
// bound is not applied here because administrators may register
// short-named owner accounts, mirroring the registration split.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "invalid body")
	}
	role, ok := model.ParseRole(req.Role)
	if !ok {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "unknown role")
	}
	if req.Email == "" || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "email/password required")
	}
	if err := utils.ValidateAddress(req.Address); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, err.Error())
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.Create(ctx, req.Name, req.Email, req.Address, req.Password, role, h.Cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return jsonError(c, http.StatusConflict, CodeConflict, "email already exists")
		}
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "user creation failed")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "User created successfully"})
}

// SetUserRole overwrites a user's role with a value from the closed
// set.
func (h *AdminHandler) SetUserRole(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "invalid id")
	}
	var req setRoleReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "invalid body")
	}
	role, ok := model.ParseRole(req.Role)
	if !ok {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "unknown role")
	}

	ctx := c.Request().Context()
	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return jsonError(c, http.StatusNotFound, CodeNotFound, "user not found")
		}
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "database error")
	}
	if err := h.Users.UpdateRole(ctx, id, role); err != nil {
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "role update failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User role updated successfully"})
}

// AssignUserToStore sets (or clears, with null) the store a user
// reports on. Both sides of the relation are verified before the
// write.
func (h *AdminHandler) AssignUserToStore(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "invalid id")
	}
	var req assignStoreReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "invalid body")
	}

	ctx := c.Request().Context()
	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return jsonError(c, http.StatusNotFound, CodeNotFound, "user not found")
		}
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "database error")
	}
	if req.StoreID != nil {
		if _, err := h.Stores.GetByID(ctx, *req.StoreID); err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return jsonError(c, http.StatusNotFound, CodeNotFound, "store not found")
			}
			return jsonError(c, http.StatusInternalServerError, CodeInternal, "database error")
		}
	}
	if err := h.Users.AssignStore(ctx, id, req.StoreID); err != nil {
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "store assignment failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Store assigned successfully"})
}

// CreateStore adds a store to the catalog. New stores start with a
// null aggregate.
func (h *AdminHandler) CreateStore(c echo.Context) error {
	var req storeReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "invalid body")
	}
	if req.Name == "" {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "name required")
	}
	if err := utils.ValidateAddress(req.Address); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := &model.Store{Name: req.Name, Address: req.Address}
	if err := h.Stores.Create(ctx, s); err != nil {
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "store creation failed")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Store added!", "id": s.ID})
}

// UpdateStore overwrites a store's name and address.
func (h *AdminHandler) UpdateStore(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "invalid id")
	}
	var req storeReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "invalid body")
	}
	if req.Name == "" {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "name required")
	}
	if err := utils.ValidateAddress(req.Address); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.Stores.UpdateInfo(ctx, id, req.Name, req.Address); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return jsonError(c, http.StatusNotFound, CodeNotFound, "store not found")
		}
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "store update failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Store updated"})
}

// DeleteStore removes a store, its ratings and any owner assignments
// in one transaction.
func (h *AdminHandler) DeleteStore(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Stores.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return jsonError(c, http.StatusNotFound, CodeNotFound, "store not found")
		}
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "store deletion failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Store deleted"})
}

// GetStats returns the platform-wide counters for the admin dashboard.
func (h *AdminHandler) GetStats(c echo.Context) error {
	ctx := c.Request().Context()
	s, err := h.Stats.Counts(ctx)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "database error")
	}
	return c.JSON(http.StatusOK, s)
}
