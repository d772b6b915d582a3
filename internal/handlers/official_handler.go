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

type OfficialHandler struct {
	officialService *services.OfficialService
}

func NewOfficialHandler(officialService *services.OfficialService) *OfficialHandler {
	return &OfficialHandler{officialService: officialService}
}

// Register accepts the technical-official examination application form.
func (h *OfficialHandler) Register(c *fiber.Ctx) error {
	official := models.TechnicalOfficial{
		CandidateName: c.FormValue("candidateName"),
		ParentName:    c.FormValue("parentName"),
		Address:       c.FormValue("address"),
		AadharNumber:  c.FormValue("aadharNumber"),
		Gender:        c.FormValue("gender"),
		BloodGroup:    c.FormValue("bloodGroup"),
		PlayerLevel:   c.FormValue("playerLevel"),
		Work:          c.FormValue("work"),
		Mobile:        c.FormValue("mobile"),
		Education:     c.FormValue("education"),
		Email:         c.FormValue("email"),
		TransactionID: c.FormValue("transactionId"),
	}

	if official.CandidateName == "" || official.ParentName == "" || c.FormValue("dob") == "" ||
		official.Address == "" || official.AadharNumber == "" || official.Gender == "" ||
		official.PlayerLevel == "" || official.Work == "" || official.Mobile == "" ||
		official.Education == "" || official.Email == "" || official.TransactionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("All fields are mandatory."))
	}

	dob, err := time.Parse("2006-01-02", c.FormValue("dob"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid date of birth"))
	}
	official.DOB = dob

	var documents []uploads.File
	var closers []io.Closer
	defer func() { closeAll(closers) }()
	for _, field := range []string{"signature", "photo", "receipt"} {
		doc, closer, err := formDocument(c, field)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Signature, photo and payment receipt are required."))
		}
		documents = append(documents, *doc)
		closers = append(closers, closer)
	}

	_, err = h.officialService.Register(c.Context(), &services.OfficialRegistration{
		Official:  official,
		Documents: documents,
	})
	if err != nil {
		if errors.Is(err, services.ErrDuplicateOfficial) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Aadhar Number, Email or Transaction ID already registered."))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal Server Error"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Application submitted successfully! You will be notified after review.",
	})
}

func (h *OfficialHandler) List(c *fiber.Ctx) error {
	officials, err := h.officialService.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Error fetching technical officials"))
	}
	return c.JSON(fiber.Map{"success": true, "data": officials})
}

func (h *OfficialHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid official id"))
	}

	official, err := h.officialService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrOfficialNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Technical official not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Error fetching technical official"))
	}
	return c.JSON(fiber.Map{"success": true, "data": official})
}

func (h *OfficialHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid official id"))
	}

	official, err := h.officialService.UpdateStatus(c.Context(), id, req.Status, req.Remarks)
	if err != nil {
		if errors.Is(err, services.ErrOfficialNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Technical official not found"))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Status updated to " + official.Status,
		"data":    official,
	})
}

type officialUpdateRequest struct {
	CandidateName *string `json:"candidateName"`
	ParentName    *string `json:"parentName"`
	DOB           *string `json:"dob"`
	Address       *string `json:"address"`
	AadharNumber  *string `json:"aadharNumber"`
	Gender        *string `json:"gender"`
	PlayerLevel   *string `json:"playerLevel"`
	Work          *string `json:"work"`
	Mobile        *string `json:"mobile"`
	Education     *string `json:"education"`
	Email         *string `json:"email"`
	Remarks       *string `json:"remarks"`
}

func (h *OfficialHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid official id"))
	}

	var req officialUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	upd := services.OfficialUpdate{
		CandidateName: req.CandidateName,
		ParentName:    req.ParentName,
		Address:       req.Address,
		AadharNumber:  req.AadharNumber,
		Gender:        req.Gender,
		PlayerLevel:   req.PlayerLevel,
		Work:          req.Work,
		Mobile:        req.Mobile,
		Education:     req.Education,
		Email:         req.Email,
		Remarks:       req.Remarks,
	}
	if req.DOB != nil {
		dob, err := time.Parse("2006-01-02", *req.DOB)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid date of birth"))
		}
		upd.DOB = &dob
	}

	official, err := h.officialService.Update(c.Context(), id, &upd)
	if err != nil {
		if errors.Is(err, services.ErrOfficialNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Technical official not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Update failed"))
	}
	return c.JSON(fiber.Map{"success": true, "data": official})
}

// SetExamScore records (or clears) an exam result; the grade is derived.
func (h *OfficialHandler) SetExamScore(c *fiber.Ctx) error {
	var req dto.ExamScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid official id"))
	}

	official, err := h.officialService.SetExamScore(c.Context(), id, req.ExamScore)
	if err != nil {
		if errors.Is(err, services.ErrOfficialNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Technical official not found"))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Exam score updated",
		"data":    official,
	})
}

func (h *OfficialHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid official id"))
	}

	if err := h.officialService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrOfficialNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Technical official not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Delete failed"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Record deleted successfully"})
}
