package handlers

import (
	"errors"
	"strings"

	"shoplite-catalog/internal/adapters/http/middleware"
	"shoplite-catalog/internal/core/domain"
	"shoplite-catalog/internal/core/services"
	"shoplite-catalog/internal/pkg/response"
	"shoplite-catalog/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login form
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// TokenResponse is the login response body
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login handles user login
// @Summary Login
// @Description Authenticate with username and password, returns a bearer token
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} response.Response
// @Router /auth/token [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Unauthorized(c, "Invalid authentication credentials")
	}

	user, err := h.authService.Authenticate(c.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		// Every authentication failure gets the same body; the cause is
		// never surfaced to the caller.
		return response.Unauthorized(c, "Invalid authentication credentials")
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		return response.InternalServerError(c, "Failed to issue token")
	}

	return c.JSON(TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// CreateUser handles user registration
// @Summary Register new user
// @Description Register a new customer account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/create_user [post]
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if err := validator.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.authService.Register(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return response.Conflict(c, "Username or email already exists")
		}
		return response.InternalServerError(c, "Failed to register user")
	}

	return response.Created(c, "User registered successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// ReadCurrentUser returns the authenticated principal
// @Summary Current user
// @Description Returns the identity and role decoded from the presented token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/read_current_user [get]
func (h *AuthHandler) ReadCurrentUser(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return response.Unauthorized(c, "Could not validate user")
	}

	return response.Success(c, "Current user", fiber.Map{
		"user": principal,
	})
}
