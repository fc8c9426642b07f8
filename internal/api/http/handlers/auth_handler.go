package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rabiijabrour/workers-production-system/internal/api/dto"
	"github.com/rabiijabrour/workers-production-system/internal/auth"
	"github.com/rabiijabrour/workers-production-system/internal/domain"
	"github.com/rabiijabrour/workers-production-system/internal/service"
	apperrors "github.com/rabiijabrour/workers-production-system/pkg/util"
)

// AuthHandler exposes registration, login and the caller profile.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.auth.Register(c.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
		Role:     domain.Role(req.Role),
	}); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "registration successful"})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Token:    result.Token,
		Role:     string(result.Role),
		FullName: result.FullName,
	})
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	user, err := h.auth.Profile(c.Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}
