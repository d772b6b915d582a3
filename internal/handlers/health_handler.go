package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ddka-tech/ddka-backend/internal/database"
)

// Health reports process liveness and database reachability.
func Health(c *fiber.Ctx) error {
	dbStatus := "ok"
	status := fiber.StatusOK
	if err := database.Ping(); err != nil {
		dbStatus = "unreachable"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   "up",
		"database": dbStatus,
	})
}
