package services

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"sportconnect-backend/models"
	"sportconnect-backend/utils"
)

type SportService struct {
	DB *gorm.DB
}

func NewSportService(db *gorm.DB) *SportService {
	return &SportService{DB: db}
}

// ListSports returns the catalog, paginated and ordered by name.
func (s *SportService) ListSports(c *fiber.Ctx) error {
	page := utils.PageParam(c)

	var count int64
	if err := s.DB.Model(&models.Sport{}).Count(&count).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	var sports []models.Sport
	if err := s.DB.Order("name ASC").
		Offset(utils.PageOffset(page)).Limit(utils.PageSize).
		Find(&sports).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(utils.Page{Count: count, Page: page, PageSize: utils.PageSize, Results: sports})
}

func (s *SportService) GetSport(c *fiber.Ctx) error {
	var sport models.Sport
	if err := s.DB.First(&sport, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "sport not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(sport)
}

// CreateSport adds a catalog entry. The slug is derived from the name.
func (s *SportService) CreateSport(c *fiber.Ctx) error {
	type Req struct {
		Name string `json:"name"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}

	sport := models.Sport{
		ID:   uuid.NewString(),
		Name: req.Name,
		Slug: slug.Make(req.Name),
	}
	if err := s.DB.Create(&sport).Error; err != nil {
		return c.Status(409).JSON(fiber.Map{"error": "a sport with this name already exists"})
	}
	return c.Status(201).JSON(sport)
}

// UpdateSport renames a sport; the slug follows the new name.
func (s *SportService) UpdateSport(c *fiber.Ctx) error {
	var sport models.Sport
	if err := s.DB.First(&sport, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "sport not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	type Req struct {
		Name string `json:"name"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}

	sport.Name = req.Name
	sport.Slug = slug.Make(req.Name)
	if err := s.DB.Save(&sport).Error; err != nil {
		return c.Status(409).JSON(fiber.Map{"error": "a sport with this name already exists"})
	}
	return c.JSON(sport)
}

// DeleteSport removes a catalog entry, refusing while activities reference it.
func (s *SportService) DeleteSport(c *fiber.Ctx) error {
	id := c.Params("id")

	var referencing int64
	if err := s.DB.Model(&models.Activity{}).Where("sport_id = ?", id).Count(&referencing).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	if referencing > 0 {
		return c.Status(409).JSON(fiber.Map{"error": "sport is referenced by activities and cannot be deleted"})
	}

	result := s.DB.Delete(&models.Sport{}, "id = ?", id)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "sport not found"})
	}
	return c.SendStatus(204)
}
