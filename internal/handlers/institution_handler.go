package handlers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ddka-tech/ddka-backend/internal/dto"
	"github.com/ddka-tech/ddka-backend/internal/models"
	"github.com/ddka-tech/ddka-backend/internal/services"
	"github.com/ddka-tech/ddka-backend/internal/uploads"
)

type InstitutionHandler struct {
	institutionService *services.InstitutionService
}

func NewInstitutionHandler(institutionService *services.InstitutionService) *InstitutionHandler {
	return &InstitutionHandler{institutionService: institutionService}
}

// Register accepts the affiliation application form. The payment screenshot
// is mandatory, the logo is optional.
func (h *InstitutionHandler) Register(c *fiber.Ctx) error {
	year, _ := strconv.Atoi(c.FormValue("year"))
	totalPlayers, _ := strconv.Atoi(c.FormValue("totalPlayers"))

	inst := models.Institution{
		InstName:      c.FormValue("instName"),
		InstType:      c.FormValue("instType"),
		RegNo:         c.FormValue("regNo"),
		Year:          year,
		HeadName:      c.FormValue("headName"),
		SecretaryName: c.FormValue("secretaryName"),
		TotalPlayers:  totalPlayers,
		Area:          c.FormValue("area"),
		SurfaceType:   c.FormValue("surfaceType"),
		Email:         c.FormValue("email"),
		OfficePhone:   c.FormValue("officePhone"),
		AltPhone:      c.FormValue("altPhone"),
		Address:       c.FormValue("address"),
		ContactPerson: c.FormValue("contactPerson"),
		AcceptedTerms: c.FormValue("acceptedTerms") == "true",
		TransactionID: c.FormValue("transactionId"),
	}

	if inst.InstName == "" || inst.RegNo == "" || inst.Email == "" ||
		inst.OfficePhone == "" || inst.Address == "" || inst.TransactionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("All mandatory fields are required."))
	}
	if !inst.AcceptedTerms {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("You must agree to the Terms & Conditions to register."))
	}

	var documents []uploads.File
	var closers []io.Closer
	defer func() { closeAll(closers) }()

	screenshot, closer, err := formDocument(c, "screenshot")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Payment screenshot is required."))
	}
	documents = append(documents, *screenshot)
	closers = append(closers, closer)

	if logo, closer, err := formDocument(c, "logo"); err == nil {
		documents = append(documents, *logo)
		closers = append(closers, closer)
	}

	_, err = h.institutionService.Register(c.Context(), &services.InstitutionRegistration{
		Institution: inst,
		Documents:   documents,
	})
	if err != nil {
		if errors.Is(err, services.ErrDuplicateInstitution) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Registration Number or Transaction ID already registered."))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal Server Error"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Affiliation request submitted! Awaiting manual verification.",
	})
}

func (h *InstitutionHandler) List(c *fiber.Ctx) error {
	institutions, err := h.institutionService.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Error fetching institutions"))
	}
	return c.JSON(fiber.Map{"success": true, "data": institutions})
}

func (h *InstitutionHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid institution id"))
	}

	inst, err := h.institutionService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrInstitutionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Institution not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Error fetching institution"))
	}
	return c.JSON(fiber.Map{"success": true, "data": inst})
}

func (h *InstitutionHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid institution id"))
	}

	inst, err := h.institutionService.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInstitutionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Institution not found"))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Status updated to " + inst.Status,
		"data":    inst,
	})
}

func (h *InstitutionHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid institution id"))
	}

	if err := h.institutionService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrInstitutionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Institution not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Delete failed"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Record deleted successfully"})
}
