package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/ports"
)

// UserHandler is the admin-only user management surface.
type UserHandler struct {
	users ports.UserRepository
}

func NewUserHandler(users ports.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type listUsersResponse struct {
	Data []domain.User `json:"data"`
}

// List handles GET /v1/admin/users.
//
// @Summary      List all user accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{Data: users})
}

// SetActive handles PATCH /v1/admin/users/:id/active — enables or disables
// an account. Deactivated users fail login; roles themselves never change.
//
// @Summary      Enable or disable a user account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "User ID"
// @Param        body  body      setActiveRequest  true  "Desired active state"
// @Success      204   "account updated"
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/users/{id}/active [patch]
func (h *UserHandler) SetActive(c echo.Context) error {
	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.users.SetActive(c.Request().Context(), c.Param("id"), *req.IsActive); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
