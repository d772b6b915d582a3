package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ddka-tech/ddka-backend/internal/dto"
	"github.com/ddka-tech/ddka-backend/internal/metrics"
	"github.com/ddka-tech/ddka-backend/internal/verify"
)

// VerifyHandler serves the public identity-verification endpoints.
type VerifyHandler struct {
	lookup *verify.Service
}

func NewVerifyHandler(lookup *verify.Service) *VerifyHandler {
	return &VerifyHandler{lookup: lookup}
}

// Unified resolves an identifier across all entity types at once.
func (h *VerifyHandler) Unified(c *fiber.Ctx) error {
	identifier, ok := identifierParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Identifier is required"))
	}

	record, err := h.lookup.Lookup(c.Context(), identifier)
	return respondLookup(c, "unified", record, err)
}

func (h *VerifyHandler) Player(c *fiber.Ctx) error {
	identifier, ok := identifierParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Identifier is required"))
	}

	record, err := h.lookup.LookupPlayer(c.Context(), identifier)
	return respondLookup(c, "player", record, err)
}

func (h *VerifyHandler) Official(c *fiber.Ctx) error {
	identifier, ok := identifierParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Identifier is required"))
	}

	record, err := h.lookup.LookupOfficial(c.Context(), identifier)
	return respondLookup(c, "official", record, err)
}

func (h *VerifyHandler) Institution(c *fiber.Ctx) error {
	identifier, ok := identifierParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Identifier is required"))
	}

	record, err := h.lookup.LookupInstitution(c.Context(), identifier)
	return respondLookup(c, "institution", record, err)
}

func identifierParam(c *fiber.Ctx) (string, bool) {
	identifier := strings.TrimSpace(c.Params("identifier"))
	return identifier, identifier != ""
}

// respondLookup maps the three lookup outcomes: found, not found, and
// "the system could not check".
func respondLookup(c *fiber.Ctx, entity string, record any, err error) error {
	if err != nil {
		if errors.Is(err, verify.ErrNotFound) {
			metrics.Verifications.WithLabelValues(entity, "not_found").Inc()
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("No record found for this identifier"))
		}
		metrics.Verifications.WithLabelValues(entity, "error").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Verification lookup failed"))
	}

	metrics.Verifications.WithLabelValues(entity, "found").Inc()
	return c.JSON(fiber.Map{"success": true, "data": record})
}
