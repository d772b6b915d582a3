package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ddka-tech/ddka-backend/internal/dto"
	"github.com/ddka-tech/ddka-backend/internal/settings"
)

type SettingsHandler struct {
	settings *settings.Service
}

func NewSettingsHandler(svc *settings.Service) *SettingsHandler {
	return &SettingsHandler{settings: svc}
}

// GetPublic exposes the flags the public site needs to render itself.
func (h *SettingsHandler) GetPublic(c *fiber.Ctx) error {
	public, err := h.settings.GetPublic(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to load settings"))
	}
	return c.JSON(fiber.Map{"success": true, "settings": public})
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	setting, err := h.settings.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to load settings"))
	}
	return c.JSON(fiber.Map{"success": true, "settings": setting})
}

func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var update settings.Update
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	setting, err := h.settings.Apply(c.Context(), update)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to update settings"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Settings updated", "settings": setting})
}
