package handlers

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ddka-tech/ddka-backend/internal/dto"
	"github.com/ddka-tech/ddka-backend/internal/models"
	"github.com/ddka-tech/ddka-backend/internal/services"
	"github.com/ddka-tech/ddka-backend/internal/uploads"
)

type PlayerHandler struct {
	playerService *services.PlayerService
}

func NewPlayerHandler(playerService *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

// Register accepts the public multipart registration form with its four
// mandatory documents.
func (h *PlayerHandler) Register(c *fiber.Ctx) error {
	player := models.Player{
		FullName:         c.FormValue("fullName"),
		FathersName:      c.FormValue("fathersName"),
		Gender:           c.FormValue("gender"),
		BloodGroup:       c.FormValue("bloodGroup"),
		Email:            c.FormValue("email"),
		Phone:            c.FormValue("phone"),
		ParentsPhone:     c.FormValue("parentsPhone"),
		Address:          c.FormValue("address"),
		AadharNumber:     c.FormValue("aadharNumber"),
		District:         c.FormValue("district"),
		SportsExperience: c.FormValue("sportsExperience"),
		ReasonForJoining: c.FormValue("reasonForJoining"),
		TransactionID:    c.FormValue("transactionId"),
		AcceptedTerms:    c.FormValue("acceptedTerms") == "true",
	}

	if player.FullName == "" || player.FathersName == "" || c.FormValue("dob") == "" ||
		player.Email == "" || player.Phone == "" || player.AadharNumber == "" ||
		player.TransactionID == "" || player.ReasonForJoining == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("All text fields are mandatory."))
	}
	if !player.AcceptedTerms {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("You must agree to the Terms & Conditions to register."))
	}

	dob, err := time.Parse("2006-01-02", c.FormValue("dob"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid date of birth"))
	}
	player.DOB = dob

	var documents []uploads.File
	var closers []io.Closer
	defer func() { closeAll(closers) }()
	for _, field := range []string{"photo", "front", "back", "receipt"} {
		doc, closer, err := formDocument(c, field)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("All 4 documents (Photo, Aadhar Front/Back, and Receipt) are required."))
		}
		documents = append(documents, *doc)
		closers = append(closers, closer)
	}

	_, err = h.playerService.Register(c.Context(), &services.PlayerRegistration{
		Player:    player,
		Documents: documents,
	})
	if err != nil {
		if errors.Is(err, services.ErrDuplicatePlayer) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Aadhar Number or Transaction ID already registered."))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal Server Error"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registration successful! Awaiting manual verification.",
	})
}

func (h *PlayerHandler) List(c *fiber.Ctx) error {
	players, err := h.playerService.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Error fetching players"))
	}
	return c.JSON(fiber.Map{"success": true, "data": players})
}

func (h *PlayerHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid player id"))
	}

	player, err := h.playerService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Player not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Error fetching player"))
	}
	return c.JSON(fiber.Map{"success": true, "data": player})
}

// GetByCardNumber looks a player up by their printed card number.
func (h *PlayerHandler) GetByCardNumber(c *fiber.Ctx) error {
	player, err := h.playerService.GetByCardNumber(c.Context(), c.Params("idNo"))
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Player not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Error fetching player"))
	}
	return c.JSON(fiber.Map{"success": true, "data": player})
}

func (h *PlayerHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid player id"))
	}

	player, err := h.playerService.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Player not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Update failed"))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Status updated to " + player.Status,
		"data":    player,
	})
}

func (h *PlayerHandler) AssignCard(c *fiber.Ctx) error {
	var req dto.AssignCardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	player, err := h.playerService.AssignCard(c.Context(), req.ID, req.TransactionID, req.IDNo, req.MemberRole)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Player not found"))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(fiber.Map{"success": true, "message": "ID number assigned successfully", "data": player})
}

func (h *PlayerHandler) ClearCard(c *fiber.Ctx) error {
	var req dto.ClearCardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	player, err := h.playerService.ClearCard(c.Context(), req.ID, req.TransactionID)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Player not found"))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(fiber.Map{"success": true, "message": "ID number removed successfully", "data": player})
}

func (h *PlayerHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid player id"))
	}

	if err := h.playerService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Player not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Delete failed"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Record deleted successfully"})
}
