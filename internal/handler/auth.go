package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating-platform/internal/config"
	"github.com/iliyamo/store-rating-platform/internal/middleware"
	"github.com/iliyamo/store-rating-platform/internal/model"
	"github.com/iliyamo/store-rating-platform/internal/repository"
	"github.com/iliyamo/store-rating-platform/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type changePasswordReq struct {
	NewPassword string `json:"newPassword"`
}

type loginResp struct {
	Token   string  `json:"token"`
	UserID  uint64  `json:"userId"`
	Role    string  `json:"role"`
	StoreID *uint64 `json:"storeId,omitempty"`
}

// Register creates a normal-user account. The role is fixed to USER
// regardless of payload; privileged accounts are created only through
// the admin endpoint. Field policies are checked before any
// persistence call and each failure names the violated rule.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "email/password required")
	}
	if err := utils.ValidateName(req.Name); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, err.Error())
	}
	if err := utils.ValidateAddress(req.Address); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, err.Error())
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	_, err := h.Users.Create(ctx, req.Name, req.Email, req.Address, req.Password, model.RoleUser, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return jsonError(c, http.StatusConflict, CodeConflict, "email already exists")
		}
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "create user failed")
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Registration successful!"})
}

// Login verifies credentials and issues a 24h session token. Unknown
// email and wrong password return the identical envelope so the
// response never reveals whether an email is registered.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "email/password required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonError(c, http.StatusUnauthorized, CodeAuthentication, "invalid email or password")
		}
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return jsonError(c, http.StatusUnauthorized, CodeAuthentication, "invalid email or password")
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.TokenTTLMin)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "issue token failed")
	}

	resp := loginResp{Token: tok.Token, UserID: u.ID, Role: u.Role.String()}
	if u.Role == model.RoleOwner {
		resp.StoreID = u.StoreID
	}
	return c.JSON(http.StatusOK, resp)
}

// ChangePassword re-validates the password policy and overwrites the
// caller's hash. The target user comes from the verified token, so
// one account can never rotate another's password.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	uid, err := middleware.CallerID(c)
	if err != nil {
		return jsonError(c, http.StatusUnauthorized, CodeAuthentication, "unauthorized")
	}
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, "invalid body")
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return jsonError(c, http.StatusBadRequest, CodeValidation, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdatePassword(ctx, uid, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return jsonError(c, http.StatusInternalServerError, CodeInternal, "update password failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated successfully"})
}

// Me echoes the verified token identity back to the client.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := middleware.CallerID(c)
	if err != nil {
		return jsonError(c, http.StatusUnauthorized, CodeAuthentication, "unauthorized")
	}
	role, _ := middleware.CallerRole(c)
	return c.JSON(http.StatusOK, echo.Map{"userId": uid, "role": role.String()})
}
