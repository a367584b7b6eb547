package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gemlab/assessment-portal/internal/api/metrics"
	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/ports"
)

// authCookie carries the session token for browser page navigations. API
// clients use the Authorization header instead.
const authCookie = "auth_token"

type AuthHandler struct {
	authService ports.AuthService
	users       ports.UserRepository
	tokenTTL    time.Duration
}

func NewAuthHandler(authService ports.AuthService, users ports.UserRepository, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, users: users, tokenTTL: tokenTTL}
}

type registerRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new customer account. Staff accounts are provisioned
// through the admin surface, never through self-registration.
//
// @Summary      Register a new customer account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.FullName, domain.RoleCustomer)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "user already exists"})
		}
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user and returns a JWT token. The token is also set
// as an HttpOnly cookie so browser page navigations carry it automatically.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrUserInactive) {
			return c.JSON(http.StatusForbidden, errorResponse{Error: "account disabled"})
		}
		// Every other login failure collapses to the same answer so callers
		// cannot probe which identities exist.
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	c.SetCookie(&http.Cookie{
		Name:     authCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Me returns the authenticated user's own profile.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.users.FindByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Logout expires the session cookie. Calling it without a live session is
// not an error: logging out twice lands in the same place.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204  "session cleared"
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     authCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.NoContent(http.StatusNoContent)
}
