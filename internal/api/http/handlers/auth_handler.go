package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lpkia/helpdesk-service/internal/api/dto"
	"github.com/lpkia/helpdesk-service/internal/domain"
	"github.com/lpkia/helpdesk-service/internal/service"
	apperrors "github.com/lpkia/helpdesk-service/pkg/util/errorutil"
)

// AuthHandler exposes staff account endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid JSON in request body")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.auth.Login(c.UserContext(), req.Username)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// ListUsers handles GET /auth/users.
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.UserContext(), c.Query("department"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
	})
}

// CreateUser handles POST /auth/users.
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid JSON in request body")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.auth.CreateUser(c.UserContext(), service.UserCreateInput{
		Username:   req.Username,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: domain.Department(req.Department),
		Role:       req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}
