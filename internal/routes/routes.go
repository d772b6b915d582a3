package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/ddka-tech/ddka-backend/internal/config"
	"github.com/ddka-tech/ddka-backend/internal/handlers"
	"github.com/ddka-tech/ddka-backend/internal/middleware"
	"github.com/ddka-tech/ddka-backend/internal/models"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Admin       *handlers.AdminHandler
	Player      *handlers.PlayerHandler
	Institution *handlers.InstitutionHandler
	Official    *handlers.OfficialHandler
	Donation    *handlers.DonationHandler
	Verify      *handlers.VerifyHandler
	Content     *handlers.ContentHandler
	Settings    *handlers.SettingsHandler
	BulkEmail   *handlers.BulkEmailHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h *Handlers) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", handlers.Health)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", h.Auth.Login)
	auth.Get("/me", h.Auth.Me)
	auth.Post("/admin/signup", h.Admin.Signup)
	auth.Post("/admin/login", h.Admin.Login)
	auth.Get("/admin/exists", h.Admin.Exists)

	// Public identity verification
	api.Get("/verify/player/:identifier", h.Verify.Player)
	api.Get("/verify/official/:identifier", h.Verify.Official)
	api.Get("/verify/institution/:identifier", h.Verify.Institution)
	api.Get("/verify/:identifier", h.Verify.Unified)

	// Public registrations and submissions
	api.Post("/players/register", h.Player.Register)
	api.Post("/institutions/register", h.Institution.Register)
	api.Post("/technical-officials/register", h.Official.Register)
	api.Post("/donations", h.Donation.Create)
	api.Post("/contact", h.Content.CreateContactMessage)
	api.Post("/newsletter/subscribe", h.Content.SubscribeNewsletter)

	// Public content
	api.Get("/news", h.Content.ListNews)
	api.Get("/gallery", h.Content.ListGallery)
	api.Get("/champions", h.Content.ListChampions)
	api.Get("/referees", h.Content.ListReferees)
	api.Get("/settings", h.Settings.GetPublic)

	// Admin panel (token + account required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db))
	admin.Get("/me", h.Admin.Me)
	admin.Get("/settings", h.Settings.Get)
	admin.Put("/settings", h.Settings.Update)

	// Account management stays superadmin-only
	admin.Get("/admins", middleware.SuperadminOnly(), h.Admin.List)
	admin.Put("/admins/:id", middleware.SuperadminOnly(), h.Admin.Update)
	admin.Get("/admins/:id/login-history", middleware.SuperadminOnly(), h.Admin.LoginHistory)
	admin.Get("/login-alerts", middleware.SuperadminOnly(), h.Admin.LoginAlerts)

	canDelete := middleware.RequirePermission(func(p models.Permissions) bool { return p.CanDelete })

	players := admin.Group("/players", middleware.RequirePermission(func(p models.Permissions) bool {
		return p.CanAccessPlayerDetails
	}))
	players.Get("/", h.Player.List)
	players.Get("/card/:idNo", h.Player.GetByCardNumber)
	players.Get("/:id", h.Player.Get)
	players.Put("/status", h.Player.UpdateStatus)
	players.Put("/card/assign", h.Player.AssignCard)
	players.Put("/card/clear", h.Player.ClearCard)
	players.Delete("/:id", canDelete, h.Player.Delete)

	institutions := admin.Group("/institutions", middleware.RequirePermission(func(p models.Permissions) bool {
		return p.CanAccessInstitutionDetails
	}))
	institutions.Get("/", h.Institution.List)
	institutions.Get("/:id", h.Institution.Get)
	institutions.Put("/status", h.Institution.UpdateStatus)
	institutions.Delete("/:id", canDelete, h.Institution.Delete)

	officials := admin.Group("/technical-officials", middleware.RequirePermission(func(p models.Permissions) bool {
		return p.CanAccessTechnicalOfficials
	}))
	officials.Get("/", h.Official.List)
	officials.Get("/:id", h.Official.Get)
	officials.Put("/status", h.Official.UpdateStatus)
	officials.Put("/exam-score", h.Official.SetExamScore)
	officials.Put("/:id", h.Official.Update)
	officials.Delete("/:id", canDelete, h.Official.Delete)

	donations := admin.Group("/donations", middleware.RequirePermission(func(p models.Permissions) bool {
		return p.CanAccessDonations
	}))
	donations.Get("/", h.Donation.List)
	donations.Put("/status", h.Donation.UpdateStatus)
	donations.Put("/:id", h.Donation.UpdateDetails)
	donations.Delete("/:id", canDelete, h.Donation.Delete)

	news := admin.Group("/news", middleware.RequirePermission(func(p models.Permissions) bool {
		return p.CanAccessNews
	}))
	news.Post("/", h.Content.CreateNews)
	news.Delete("/:id", canDelete, h.Content.DeleteNews)

	gallery := admin.Group("/gallery", middleware.RequirePermission(func(p models.Permissions) bool {
		return p.CanAccessGallery
	}))
	gallery.Post("/", h.Content.CreateGalleryItem)
	gallery.Delete("/:id", canDelete, h.Content.DeleteGalleryItem)

	contacts := admin.Group("/contacts", middleware.RequirePermission(func(p models.Permissions) bool {
		return p.CanAccessContacts
	}))
	contacts.Get("/", h.Content.ListContactMessages)
	contacts.Put("/:id/status", h.Content.UpdateContactStatus)

	bulkEmail := admin.Group("/bulk-email", middleware.RequirePermission(func(p models.Permissions) bool {
		return p.CanAccessContacts
	}))
	bulkEmail.Get("/recipients", h.BulkEmail.Recipients)
	bulkEmail.Post("/send", h.BulkEmail.Send)

	champions := admin.Group("/champions", middleware.RequirePermission(func(p models.Permissions) bool {
		return p.CanAccessChampions
	}))
	champions.Post("/", h.Content.CreateChampion)
	champions.Delete("/:id", canDelete, h.Content.DeleteChampion)

	referees := admin.Group("/referees", middleware.RequirePermission(func(p models.Permissions) bool {
		return p.CanAccessReferees
	}))
	referees.Post("/", h.Content.CreateReferee)
	referees.Delete("/:id", canDelete, h.Content.DeleteReferee)
}
