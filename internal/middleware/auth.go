package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/waysgoods/inventory/internal/transport"
	"github.com/waysgoods/inventory/pkg/tokens"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

type BearerAuth struct {
	JWTSecret []byte
}

func NewBearerAuth(secret []byte) *BearerAuth {
	return &BearerAuth{JWTSecret: secret}
}

// RequireAuth verifies the Authorization bearer credential and injects the
// decoded identity into the request context.
func (m *BearerAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		const prefix = "Bearer "
		if header == "" || !strings.HasPrefix(header, prefix) {
			return c.JSON(http.StatusUnauthorized, transport.Fail("Access denied"))
		}

		claims, err := tokens.AccessClaimsFromToken(strings.TrimPrefix(header, prefix), m.JWTSecret)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, transport.Fail("Invalid token"))
		}

		id, err := claims.UserID()
		if err != nil {
			return c.JSON(http.StatusUnauthorized, transport.Fail("Invalid token"))
		}

		c.Set(ContextUserID, id)
		c.Set(ContextRole, claims.Role)

		return next(c)
	}
}
