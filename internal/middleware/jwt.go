package middleware // middleware holds the echo middleware shared by the route groups

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/olympics-logistics/internal/utils"
)

// Context keys set by JWTAuth.
const (
	KeyMemberID = "user_id"
	KeyRole     = "role"
)

// JWTAuth validates a Bearer access token and stores the member id and role
// claims in the echo context under KeyMemberID and KeyRole.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(KeyMemberID, claims.MemberID)
			c.Set(KeyRole, claims.Role)
			return next(c)
		}
	}
}
