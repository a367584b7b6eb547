package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gemlab/assessment-portal/internal/core/domain"
)

// RBAC enforces role-based access control on API routes. An empty
// allowedRoles list admits any authenticated caller.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authentication claims"})
			}
			if len(allowed) == 0 {
				return next(c)
			}
			if _, ok := allowed[domain.Role(role)]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
