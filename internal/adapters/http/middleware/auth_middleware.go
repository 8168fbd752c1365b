package middleware

import (
	"errors"
	"strings"
	"time"

	"shoplite-catalog/internal/core/services"
	"shoplite-catalog/internal/pkg/jwt"
	"shoplite-catalog/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// principalKey is the fiber Locals key the guard stores the Principal under
const principalKey = "principal"

// AuthMiddleware creates the authorization guard middleware. Every protected
// request passes through it: the bearer token is decoded and validated and
// the resulting Principal is stored in Locals for the handlers.
func AuthMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		principal, err := authService.Authorize(accessToken, time.Now())
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenMissingExpiry):
				return response.BadRequest(c, "No expiry in access token")
			case errors.Is(err, jwt.ErrTokenExpired):
				return response.Forbidden(c, "Access token expired")
			default:
				return response.Unauthorized(c, "Could not validate user")
			}
		}

		c.Locals(principalKey, principal)

		return c.Next()
	}
}

// GetPrincipal returns the Principal the guard stored for this request,
// or nil if the route was not protected.
func GetPrincipal(c *fiber.Ctx) *services.Principal {
	principal, ok := c.Locals(principalKey).(*services.Principal)
	if !ok {
		return nil
	}
	return principal
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := GetPrincipal(c)
		if principal == nil {
			return response.Unauthorized(c, "Could not validate user")
		}

		for _, allowedRole := range allowedRoles {
			if principal.Role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware("ADMIN")
}

// SupplierOrAdmin middleware allows SUPPLIER or ADMIN roles
func SupplierOrAdmin() fiber.Handler {
	return RoleMiddleware("SUPPLIER", "ADMIN")
}
