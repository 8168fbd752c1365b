package handlers

import (
	"errors"

	"shoplite-catalog/internal/adapters/persistence/models"
	"shoplite-catalog/internal/core/domain"
	"shoplite-catalog/internal/core/services"
	"shoplite-catalog/internal/pkg/pagination"
	"shoplite-catalog/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PermissionHandler handles admin permission endpoints
type PermissionHandler struct {
	userService *services.UserService
}

// NewPermissionHandler creates a new permission handler
func NewPermissionHandler(userService *services.UserService) *PermissionHandler {
	return &PermissionHandler{userService: userService}
}

// ListUsers lists users (admin only)
// @Summary List users
// @Tags Permission
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /permission/users [get]
func (h *PermissionHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.userService.ListUsers(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully",
		pagination.NewResponse(result.Users, params, result.Total))
}

// UpdatePermission toggles a user's supplier role (admin only)
// @Summary Toggle supplier permission
// @Tags Permission
// @Produce json
// @Security BearerAuth
// @Param user_id query int true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /permission/update_permission [patch]
func (h *PermissionHandler) UpdatePermission(c *fiber.Ctx) error {
	id := c.QueryInt("user_id")
	if id < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.ToggleSupplierRole(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Cannot change role of an admin user")
		default:
			return response.InternalServerError(c, "Failed to update permission")
		}
	}

	message := "User is no longer supplier"
	if user.Role == models.RoleSupplier {
		message = "User is now supplier"
	}

	return response.Success(c, message, fiber.Map{
		"user": user.ToResponse(),
	})
}

// DeleteUser toggles a user's active flag (admin only).
// Accounts are deactivated rather than removed; calling this on an
// inactive account reactivates it.
// @Summary Deactivate or reactivate user
// @Tags Permission
// @Produce json
// @Security BearerAuth
// @Param user_id query int true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /permission/delete_user [delete]
func (h *PermissionHandler) DeleteUser(c *fiber.Ctx) error {
	id := c.QueryInt("user_id")
	if id < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.ToggleActive(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Cannot deactivate an admin user")
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	message := "User is deleted"
	if user.IsActive {
		message = "User is activated"
	}

	return response.Success(c, message, fiber.Map{
		"user": user.ToResponse(),
	})
}
