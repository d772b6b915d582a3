package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ddka-tech/ddka-backend/internal/dto"
	"github.com/ddka-tech/ddka-backend/internal/services"
)

// BulkEmailHandler serves the admin composer: list everyone reachable by
// email, then send one message to a selection.
type BulkEmailHandler struct {
	bulkEmailService *services.BulkEmailService
}

func NewBulkEmailHandler(bulkEmailService *services.BulkEmailService) *BulkEmailHandler {
	return &BulkEmailHandler{bulkEmailService: bulkEmailService}
}

func (h *BulkEmailHandler) Recipients(c *fiber.Ctx) error {
	recipients, err := h.bulkEmailService.Recipients(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to load recipients"))
	}
	return c.JSON(fiber.Map{"success": true, "data": recipients})
}

func (h *BulkEmailHandler) Send(c *fiber.Ctx) error {
	var req struct {
		Subject    string                   `json:"subject"`
		Message    string                   `json:"message"`
		Recipients []services.BulkRecipient `json:"recipients"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}
	if req.Subject == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Subject and message are required"))
	}
	if len(req.Recipients) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Select at least one recipient"))
	}

	result := h.bulkEmailService.Send(req.Subject, req.Message, req.Recipients)
	return c.JSON(fiber.Map{"success": true, "data": result})
}
