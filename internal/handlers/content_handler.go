package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ddka-tech/ddka-backend/internal/dto"
	"github.com/ddka-tech/ddka-backend/internal/models"
	"github.com/ddka-tech/ddka-backend/internal/tasks"
	"github.com/ddka-tech/ddka-backend/internal/uploads"
)

// ContentHandler serves the public-site content: news, gallery, contact
// messages, newsletter subscriptions, champions and referees.
type ContentHandler struct {
	db       *gorm.DB
	uploader uploads.Uploader
}

func NewContentHandler(db *gorm.DB, uploader uploads.Uploader) *ContentHandler {
	return &ContentHandler{db: db, uploader: uploader}
}

func (h *ContentHandler) ListNews(c *fiber.Ctx) error {
	var items []models.News
	if err := h.db.WithContext(c.Context()).Order("published_at DESC").Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Error fetching news"))
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

func (h *ContentHandler) CreateNews(c *fiber.Ctx) error {
	item := models.News{
		Title:       c.FormValue("title"),
		Body:        c.FormValue("body"),
		PublishedAt: time.Now(),
	}
	if item.Title == "" || item.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Title and body are required"))
	}

	if doc, closer, err := formDocument(c, "image"); err == nil {
		defer closer.Close()
		url, err := h.uploader.Upload(c.Context(), "ddka/news", doc.Name, doc.Content)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Image upload failed"))
		}
		item.ImageURL = url
	}

	if err := h.db.WithContext(c.Context()).Create(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to create news item"))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

func (h *ContentHandler) DeleteNews(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid news id"))
	}

	var item models.News
	if err := h.db.WithContext(c.Context()).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("News item not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Delete failed"))
	}
	if err := h.db.WithContext(c.Context()).Delete(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Delete failed"))
	}
	if item.ImageURL != "" {
		url := item.ImageURL
		up := h.uploader
		tasks.BestEffortAsync("news-image-cleanup", func() error {
			uploads.DestroyAll(context.Background(), up, url)
			return nil
		})
	}
	return c.JSON(fiber.Map{"success": true, "message": "News item deleted"})
}

func (h *ContentHandler) ListGallery(c *fiber.Ctx) error {
	var items []models.GalleryItem
	if err := h.db.WithContext(c.Context()).Order("created_at DESC").Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Error fetching gallery"))
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

func (h *ContentHandler) CreateGalleryItem(c *fiber.Ctx) error {
	doc, closer, err := formDocument(c, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("An image file is required"))
	}
	defer closer.Close()

	url, err := h.uploader.Upload(c.Context(), "ddka/gallery", doc.Name, doc.Content)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Image upload failed"))
	}

	item := models.GalleryItem{
		Title:    c.FormValue("title"),
		ImageURL: url,
		PublicID: uploads.PublicIDFromURL(url),
	}
	if err := h.db.WithContext(c.Context()).Create(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to save gallery item"))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

func (h *ContentHandler) DeleteGalleryItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid gallery id"))
	}

	var item models.GalleryItem
	if err := h.db.WithContext(c.Context()).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Gallery item not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Delete failed"))
	}
	if err := h.db.WithContext(c.Context()).Delete(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Delete failed"))
	}
	if item.ImageURL != "" {
		url := item.ImageURL
		up := h.uploader
		tasks.BestEffortAsync("gallery-image-cleanup", func() error {
			uploads.DestroyAll(context.Background(), up, url)
			return nil
		})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Gallery item deleted"})
}

func (h *ContentHandler) CreateContactMessage(c *fiber.Ctx) error {
	var msg models.ContactMessage
	if err := c.BodyParser(&msg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Name, email and message are required"))
	}
	msg.ID = uuid.Nil
	msg.Status = "New"

	if err := h.db.WithContext(c.Context()).Create(&msg).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to save message"))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Message received. We will get back to you soon.",
	})
}

func (h *ContentHandler) ListContactMessages(c *fiber.Ctx) error {
	var msgs []models.ContactMessage
	if err := h.db.WithContext(c.Context()).Order("created_at DESC").Find(&msgs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Error fetching messages"))
	}
	return c.JSON(fiber.Map{"success": true, "data": msgs})
}

func (h *ContentHandler) UpdateContactStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid message id"))
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Status is required"))
	}

	result := h.db.WithContext(c.Context()).Model(&models.ContactMessage{}).
		Where("id = ?", id).Update("status", req.Status)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Update failed"))
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Message not found"))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Status updated"})
}

// SubscribeNewsletter is idempotent: re-subscribing an existing address is
// reported as success.
func (h *ContentHandler) SubscribeNewsletter(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("A valid email is required"))
	}

	var existing models.NewsletterSubscription
	err := h.db.WithContext(c.Context()).First(&existing, "email = ?", email).Error
	if err == nil {
		return c.JSON(fiber.Map{"success": true, "message": "Already subscribed"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Subscription failed"))
	}

	sub := models.NewsletterSubscription{Email: email}
	if err := h.db.WithContext(c.Context()).Create(&sub).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Subscription failed"))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Subscribed successfully"})
}

func (h *ContentHandler) ListChampions(c *fiber.Ctx) error {
	var champions []models.ChampionPlayer
	if err := h.db.WithContext(c.Context()).Order("year DESC").Find(&champions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Error fetching champions"))
	}
	return c.JSON(fiber.Map{"success": true, "data": champions})
}

func (h *ContentHandler) CreateChampion(c *fiber.Ctx) error {
	year, _ := strconv.Atoi(c.FormValue("year"))
	champion := models.ChampionPlayer{
		Name:        c.FormValue("name"),
		Achievement: c.FormValue("achievement"),
		Year:        year,
	}
	if champion.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Name is required"))
	}

	if doc, closer, err := formDocument(c, "photo"); err == nil {
		defer closer.Close()
		url, err := h.uploader.Upload(c.Context(), "ddka/champions", doc.Name, doc.Content)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Photo upload failed"))
		}
		champion.PhotoURL = url
	}

	if err := h.db.WithContext(c.Context()).Create(&champion).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to save champion"))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": champion})
}

func (h *ContentHandler) DeleteChampion(c *fiber.Ctx) error {
	return h.deleteByID(c, &models.ChampionPlayer{}, "Champion")
}

func (h *ContentHandler) ListReferees(c *fiber.Ctx) error {
	var referees []models.Referee
	if err := h.db.WithContext(c.Context()).Order("name ASC").Find(&referees).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Error fetching referees"))
	}
	return c.JSON(fiber.Map{"success": true, "data": referees})
}

func (h *ContentHandler) CreateReferee(c *fiber.Ctx) error {
	referee := models.Referee{
		Name:  c.FormValue("name"),
		Grade: c.FormValue("grade"),
		Phone: c.FormValue("phone"),
		Email: c.FormValue("email"),
	}
	if referee.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Name is required"))
	}

	if doc, closer, err := formDocument(c, "photo"); err == nil {
		defer closer.Close()
		url, err := h.uploader.Upload(c.Context(), "ddka/referees", doc.Name, doc.Content)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Photo upload failed"))
		}
		referee.PhotoURL = url
	}

	if err := h.db.WithContext(c.Context()).Create(&referee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to save referee"))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": referee})
}

func (h *ContentHandler) DeleteReferee(c *fiber.Ctx) error {
	return h.deleteByID(c, &models.Referee{}, "Referee")
}

func (h *ContentHandler) deleteByID(c *fiber.Ctx, model any, label string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid id"))
	}

	result := h.db.WithContext(c.Context()).Delete(model, "id = ?", id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Delete failed"))
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail(label + " not found"))
	}
	return c.JSON(fiber.Map{"success": true, "message": label + " deleted"})
}
