package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gemlab/assessment-portal/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both the subject and
// the role must be present, and the role must belong to the closed set.
// Their presence proves the middleware ran for this route.
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	roleStr, _ := c.Get("role").(string)
	role = domain.Role(roleStr)

	if userID == "" || roleStr == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if !domain.ValidRole(role) {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "unknown role claim")
	}
	return userID, role, nil
}
