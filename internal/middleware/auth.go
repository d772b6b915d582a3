package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ddka-tech/ddka-backend/internal/config"
	"github.com/ddka-tech/ddka-backend/internal/dto"
	"github.com/ddka-tech/ddka-backend/internal/models"

	jwtware "github.com/gofiber/contrib/jwt"
)

const adminLocal = "admin"

// JWTProtected validates the bearer token and stashes it in locals.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized: invalid or expired token"))
		},
	})
}

// AdminRequired loads the admin account behind the token. Runs after
// JWTProtected; member tokens are rejected here.
func AdminRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Invalid claims"))
		}

		role, _ := claims["role"].(string)
		if role != string(models.RoleAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Admin access required"))
		}

		id, _ := claims["id"].(string)
		adminID, err := uuid.Parse(id)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Invalid claims"))
		}

		var admin models.Admin
		if err := db.First(&admin, "id = ?", adminID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Admin account no longer exists"))
		}

		c.Locals(adminLocal, &admin)
		return c.Next()
	}
}

// CurrentAdmin returns the account loaded by AdminRequired.
func CurrentAdmin(c *fiber.Ctx) *models.Admin {
	admin, _ := c.Locals(adminLocal).(*models.Admin)
	return admin
}

// RequirePermission gates a route on one permission bit. Superadmins bypass
// every gate.
func RequirePermission(check func(models.Permissions) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin := CurrentAdmin(c)
		if admin == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
		}
		if admin.Role == models.AdminRoleSuperadmin {
			return c.Next()
		}
		if !check(admin.Permissions.Data()) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("You do not have permission to access this section"))
		}
		return c.Next()
	}
}

// SuperadminOnly restricts a route to superadmins.
func SuperadminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin := CurrentAdmin(c)
		if admin == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
		}
		if admin.Role != models.AdminRoleSuperadmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Superadmin access required"))
		}
		return c.Next()
	}
}
