package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ddka-tech/ddka-backend/internal/config"
	"github.com/ddka-tech/ddka-backend/internal/dto"
	"github.com/ddka-tech/ddka-backend/internal/services"
)

// AuthHandler serves member (player/institution/official/donor) auth.
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.MemberLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	result, err := h.authService.Login(c.Context(), &req, requestInfo(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrNoDonations):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(err.Error()))
		case errors.Is(err, services.ErrNotApproved), errors.Is(err, services.ErrCardNotAssigned), errors.Is(err, services.ErrNoConfirmed):
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail(err.Error()))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}

	return c.JSON(dto.MemberLoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   result.Token,
		Role:    result.Role,
		Profile: result.Profile,
	})
}

// Me returns the authenticated member's own profile, including recent login
// activity for account-backed roles.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	claims, err := services.ParseToken(h.cfg.JWTSecret, strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Token invalid or expired"))
	}

	role, profile, err := h.authService.Me(c.Context(), claims)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("User not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to load profile"))
	}

	return c.JSON(fiber.Map{"success": true, "role": role, "profile": profile})
}
