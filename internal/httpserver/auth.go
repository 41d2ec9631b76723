package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/waysgoods/inventory/internal/middleware"
	"github.com/waysgoods/inventory/internal/service"
	"github.com/waysgoods/inventory/internal/transport"
	"github.com/waysgoods/inventory/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "validation", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail(validationMessage(err)))
	}

	user, token, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 400, "reason", "invalid credentials")
			return c.JSON(http.StatusBadRequest, transport.Fail("Email or Password is incorrect"))
		}
		l.Error("login_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
	}

	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.Success("Login successful", transport.LoginResponse{
		ID:       user.ID,
		Email:    user.Email,
		Fullname: user.Fullname,
		Gender:   user.Gender,
		Address:  user.Address,
		Role:     user.Role,
		Token:    token,
	}))
}

func (h *AuthHTTP) CheckAuth(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.check_auth")

	id, ok := c.Get(middleware.ContextUserID).(uint)
	if !ok {
		l.Warn("check_auth_failed", "status", 401, "reason", "missing identity")
		return c.JSON(http.StatusUnauthorized, transport.Fail("Access denied"))
	}

	user, err := h.Svc.CheckAuth(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("check_auth_failed", "status", 404, "reason", "user not found")
			return c.JSON(http.StatusNotFound, transport.Fail("User not found"))
		}
		l.Error("check_auth_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
	}

	return c.JSON(http.StatusOK, transport.Envelope{
		Status: "Success",
		Data: map[string]any{
			"user": transport.UserResponse{
				ID:       user.ID,
				Fullname: user.Fullname,
				Email:    user.Email,
				Gender:   user.Gender,
				Address:  user.Address,
				Role:     user.Role,
			},
		},
	})
}
