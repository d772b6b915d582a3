package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ddka-tech/ddka-backend/internal/dto"
	"github.com/ddka-tech/ddka-backend/internal/models"
	"github.com/ddka-tech/ddka-backend/internal/services"
	"github.com/ddka-tech/ddka-backend/internal/uploads"
)

type DonationHandler struct {
	donationService *services.DonationService
}

func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// Create accepts a public donation submission; the payment receipt image is
// optional.
func (h *DonationHandler) Create(c *fiber.Ctx) error {
	amount, err := strconv.ParseFloat(c.FormValue("amount"), 64)
	if err != nil || amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("A valid donation amount is required."))
	}

	donation := models.Donation{
		Name:          c.FormValue("name"),
		Email:         c.FormValue("email"),
		Phone:         c.FormValue("phone"),
		Amount:        amount,
		Method:        c.FormValue("method"),
		Message:       c.FormValue("message"),
		TxID:          c.FormValue("txId"),
		ReceiptNumber: c.FormValue("receiptNumber"),
	}
	if donation.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Donor name is required."))
	}

	var receipt *uploads.File
	if doc, closer, err := formDocument(c, "receipt"); err == nil {
		defer closer.Close()
		receipt = doc
	}

	created, err := h.donationService.Create(c.Context(), donation, receipt)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to record donation"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Thank you for your donation! It will be verified shortly.",
		"data":    created,
	})
}

func (h *DonationHandler) List(c *fiber.Ctx) error {
	donations, err := h.donationService.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Error fetching donations"))
	}
	return c.JSON(fiber.Map{"success": true, "data": donations})
}

func (h *DonationHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid donation id"))
	}

	donation, err := h.donationService.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrDonationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Donation not found"))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Donation marked " + donation.Status,
		"data":    donation,
	})
}

// UpdateDetails edits bookkeeping fields (transaction id, receipt number,
// phone, receipt image) and can re-send the receipt email.
func (h *DonationHandler) UpdateDetails(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid donation id"))
	}

	upd := services.DonationUpdate{Notify: c.FormValue("notify") == "true"}
	if v := c.FormValue("txId"); v != "" {
		upd.TxID = &v
	}
	if v := c.FormValue("receiptNumber"); v != "" {
		upd.ReceiptNumber = &v
	}
	if v := c.FormValue("phone"); v != "" {
		upd.Phone = &v
	}

	var receipt *uploads.File
	if doc, closer, err := formDocument(c, "receipt"); err == nil {
		defer closer.Close()
		receipt = doc
	}

	donation, err := h.donationService.UpdateDetails(c.Context(), id, &upd, receipt)
	if err != nil {
		if errors.Is(err, services.ErrDonationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Donation not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Update failed"))
	}
	return c.JSON(fiber.Map{"success": true, "data": donation})
}

func (h *DonationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid donation id"))
	}

	if err := h.donationService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrDonationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Donation not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Delete failed"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Donation deleted successfully"})
}
