package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gemlab/assessment-portal/internal/api/metrics"
	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/service"
)

// sessionCookie carries the bearer token for browser page navigations,
// where an Authorization header is not available.
const sessionCookie = "auth_token"

// Guard protects dashboard page routes with redirect semantics: an
// unauthenticated navigation goes to the login fallback carrying the
// requested path, an unauthorized one goes to the default landing area, and
// everything else renders. Token parsing is lenient here — a missing or
// invalid credential is simply an unauthenticated session, not a 401.
func Guard(guard *service.RouteGuard, table domain.RouteTable, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := sessionFromRequest(c, jwtSecret)

			result := guard.EvaluateRoute(sess, table, c.Request().URL.Path)
			metrics.GuardDecisionsTotal.WithLabelValues(result.Decision.String()).Inc()

			switch result.Decision {
			case service.DecisionLogin, service.DecisionDenied:
				return c.Redirect(http.StatusFound, result.RedirectTo)
			default:
				return next(c)
			}
		}
	}
}

// sessionFromRequest reconstructs a session from the request credential:
// bearer header first, session cookie second. Failures yield the empty
// (unauthenticated) session.
func sessionFromRequest(c echo.Context, jwtSecret string) domain.Session {
	token := ""
	if claims, err := bearerClaims(c.Request().Header.Get("Authorization"), jwtSecret); err == nil {
		return sessionFromClaims(claims, rawBearer(c))
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		return domain.Session{}
	}

	claims, err := parseToken(token, jwtSecret)
	if err != nil {
		return domain.Session{}
	}
	return sessionFromClaims(claims, token)
}

func sessionFromClaims(claims map[string]any, token string) domain.Session {
	id, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return domain.Session{
		User:            &domain.User{ID: id, Email: email, Role: domain.Role(role), IsActive: true},
		Token:           token,
		IsAuthenticated: true,
	}
}

func rawBearer(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if len(header) > 7 {
		return header[7:]
	}
	return header
}
