package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ddka-tech/ddka-backend/internal/dto"
	"github.com/ddka-tech/ddka-backend/internal/middleware"
	"github.com/ddka-tech/ddka-backend/internal/services"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Signup(c *fiber.Ctx) error {
	var req dto.AdminSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	admin, err := h.adminService.Signup(c.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrAdminExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.Fail(err.Error()))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"message":     "Admin account created successfully as " + admin.Role + ". You can now login.",
		"adminId":     admin.Username,
		"role":        admin.Role,
		"permissions": admin.Permissions.Data(),
	})
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	token, admin, err := h.adminService.Login(c.Context(), &req, requestInfo(c))
	if err != nil {
		if errors.Is(err, services.ErrInvalidAdminCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Invalid Admin ID or Password"))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Login successful",
		"adminId":     admin.Username,
		"role":        admin.Role,
		"permissions": admin.Permissions.Data(),
		"token":       token,
	})
}

// Exists reports whether any admin account has been created yet, so the
// dashboard can decide between first-run signup and login.
func (h *AdminHandler) Exists(c *fiber.Ctx) error {
	exists, err := h.adminService.Exists(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to check admin status"))
	}

	message := "No admin account found"
	if exists {
		message = "Admin account exists"
	}
	return c.JSON(fiber.Map{"success": true, "exists": exists, "message": message})
}

// Me returns the calling admin, so the dashboard can refresh permissions.
func (h *AdminHandler) Me(c *fiber.Ctx) error {
	admin := middleware.CurrentAdmin(c)
	if admin == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}
	return c.JSON(fiber.Map{"success": true, "admin": admin})
}

func (h *AdminHandler) List(c *fiber.Ctx) error {
	admins, err := h.adminService.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to fetch admins"))
	}
	return c.JSON(fiber.Map{"success": true, "admins": admins})
}

func (h *AdminHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid admin id"))
	}

	var req dto.AdminUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	admin, err := h.adminService.Update(c.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Admin not found"))
		case errors.Is(err, services.ErrLastSuperadmin):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("At least one superadmin is required"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to update admin"))
	}
	return c.JSON(fiber.Map{"success": true, "admin": admin})
}

func (h *AdminHandler) LoginHistory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Admin id is required"))
	}

	activities, err := h.adminService.LoginHistory(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrAdminNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Admin not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to fetch admin login history"))
	}
	return c.JSON(fiber.Map{"success": true, "activities": activities})
}

// LoginAlerts groups recent logins by account for the security panel.
func (h *AdminHandler) LoginAlerts(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))

	alerts, err := h.adminService.LoginAlerts(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to load login activity alerts"))
	}
	return c.JSON(fiber.Map{"success": true, "alerts": alerts})
}
