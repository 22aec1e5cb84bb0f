package services

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sportconnect-backend/middleware"
	"sportconnect-backend/models"
	"sportconnect-backend/utils"
)

type ParticipationService struct {
	DB *gorm.DB
}

func NewParticipationService(db *gorm.DB) *ParticipationService {
	return &ParticipationService{DB: db}
}

var (
	errAlreadyJoined = errors.New("already joined")
	errActivityFull  = errors.New("activity full")
)

// ListParticipations returns the caller's rows; administrators see all rows
// and may narrow with ?activity_id=.
func (s *ParticipationService) ListParticipations(c *fiber.Ctx) error {
	page := utils.PageParam(c)

	query := s.DB.Model(&models.Participation{})
	if middleware.IsAdmin(c) {
		if activityID := c.Query("activity_id"); activityID != "" {
			query = query.Where("activity_id = ?", activityID)
		}
	} else {
		query = query.Where("user_id = ?", middleware.UserID(c))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	var participations []models.Participation
	if err := query.Preload("User").Preload("Activity").Preload("Activity.Sport").
		Order("joined_at DESC").
		Offset(utils.PageOffset(page)).Limit(utils.PageSize).
		Find(&participations).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(utils.Page{Count: count, Page: page, PageSize: utils.PageSize, Results: participations})
}

// CreateParticipation is the join operation. The duplicate check and the
// capacity check both happen inside one transaction that first locks the
// activity row, so two joins racing for the last slot serialize; the
// composite unique index backstops the duplicate check regardless.
func (s *ParticipationService) CreateParticipation(c *fiber.Ctx) error {
	type Req struct {
		ActivityID string `json:"activity_id"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.ActivityID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "activity_id is required"})
	}

	userID := middleware.UserID(c)
	var participation models.Participation

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var activity models.Activity
		if err := lockForUpdate(tx).First(&activity, "id = ?", req.ActivityID).Error; err != nil {
			return err
		}

		var existing models.Participation
		err := tx.Where("user_id = ? AND activity_id = ?", userID, activity.ID).
			First(&existing).Error
		if err == nil {
			return errAlreadyJoined
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var count int64
		if err := tx.Model(&models.Participation{}).
			Where("activity_id = ?", activity.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(activity.Capacity) {
			return errActivityFull
		}

		participation = models.Participation{
			ID:         uuid.NewString(),
			UserID:     userID,
			ActivityID: activity.ID,
			JoinedAt:   time.Now(),
		}
		return tx.Omit("User", "Activity").Create(&participation).Error
	})

	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "activity not found"})
	case errors.Is(err, errAlreadyJoined):
		return c.Status(409).JSON(fiber.Map{"error": "you have already joined this activity"})
	case errors.Is(err, errActivityFull):
		return c.Status(409).JSON(fiber.Map{"error": "activity is full"})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// The unique index fires when two joins race the check.
		return c.Status(409).JSON(fiber.Map{"error": "you have already joined this activity"})
	default:
		log.Printf("[PARTICIPATIONS] join failed for %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	if err := s.DB.Preload("User").Preload("Activity").Preload("Activity.Sport").
		First(&participation, "id = ?", participation.ID).Error; err != nil {
		log.Printf("[PARTICIPATIONS] reload after join failed: %v", err)
	}
	return c.Status(201).JSON(participation)
}

// DeleteParticipation is the leave operation. Leaving is idempotent: a row
// that is already gone still answers 204. Only the participant themselves or
// an admin may remove a row.
func (s *ParticipationService) DeleteParticipation(c *fiber.Ctx) error {
	var participation models.Participation
	err := s.DB.First(&participation, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.SendStatus(204)
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	if participation.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return c.Status(403).JSON(fiber.Map{"error": "you may only remove your own participation"})
	}

	if err := s.DB.Delete(&models.Participation{}, "id = ?", participation.ID).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "delete failed"})
	}
	return c.SendStatus(204)
}

// lockForUpdate applies a SELECT ... FOR UPDATE row lock where the dialect
// supports it. SQLite has no row locks; its single-writer model covers the
// same window in tests.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
