package services

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sportconnect-backend/middleware"
	"sportconnect-backend/models"
	"sportconnect-backend/utils"
)

type ActivityService struct {
	DB *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{DB: db}
}

// ListActivities is the public feed, newest first, with sport and creator
// embedded and live participant counts attached.
func (s *ActivityService) ListActivities(c *fiber.Ctx) error {
	page := utils.PageParam(c)

	var count int64
	if err := s.DB.Model(&models.Activity{}).Count(&count).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	var activities []models.Activity
	if err := s.DB.Preload("Sport").Preload("CreatedBy").
		Order("date_time DESC").
		Offset(utils.PageOffset(page)).Limit(utils.PageSize).
		Find(&activities).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	if err := s.attachDerivedFields(activities, middleware.UserID(c)); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(utils.Page{Count: count, Page: page, PageSize: utils.PageSize, Results: activities})
}

// ListMine returns the caller's own activities, paginated.
func (s *ActivityService) ListMine(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	page := utils.PageParam(c)

	var count int64
	if err := s.DB.Model(&models.Activity{}).Where("created_by_id = ?", userID).Count(&count).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	var activities []models.Activity
	if err := s.DB.Preload("Sport").Preload("CreatedBy").
		Where("created_by_id = ?", userID).
		Order("date_time DESC").
		Offset(utils.PageOffset(page)).Limit(utils.PageSize).
		Find(&activities).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	if err := s.attachDerivedFields(activities, userID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(utils.Page{Count: count, Page: page, PageSize: utils.PageSize, Results: activities})
}

func (s *ActivityService) GetActivity(c *fiber.Ctx) error {
	var activity models.Activity
	err := s.DB.Preload("Sport").Preload("CreatedBy").
		First(&activity, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "activity not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	list := []models.Activity{activity}
	if err := s.attachDerivedFields(list, middleware.UserID(c)); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(list[0])
}

// CreateActivity creates the activity and auto-enrolls the creator in one
// transaction, so an activity can never exist without its first participant.
func (s *ActivityService) CreateActivity(c *fiber.Ctx) error {
	type Req struct {
		Title         string `json:"title"`
		SportID       string `json:"sport_id"`
		DateTime      string `json:"date_time"`
		Location      string `json:"location"`
		Capacity      int    `json:"capacity"`
		RequiredLevel string `json:"required_skill_level"`
		Description   string `json:"description"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.SportID == "" || req.DateTime == "" || strings.TrimSpace(req.Location) == "" {
		return c.Status(400).JSON(fiber.Map{"error": "title, sport_id, date_time and location are required"})
	}
	if req.Capacity <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "capacity must be a positive integer"})
	}
	dateTime, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid date_time (use RFC3339)"})
	}
	level := models.SkillBeginner
	if req.RequiredLevel != "" {
		level = models.SkillLevel(req.RequiredLevel)
		if !level.Valid() {
			return c.Status(400).JSON(fiber.Map{"error": "required_skill_level must be one of beginner, intermediate, advanced, pro"})
		}
	}

	var sport models.Sport
	if err := s.DB.First(&sport, "id = ?", req.SportID).Error; err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "sport_id not found"})
	}

	userID := middleware.UserID(c)
	activity := models.Activity{
		ID:            uuid.NewString(),
		Title:         req.Title,
		SportID:       sport.ID,
		DateTime:      dateTime,
		Location:      strings.TrimSpace(req.Location),
		Capacity:      req.Capacity,
		RequiredLevel: level,
		Description:   req.Description,
		CreatedByID:   userID,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Sport", "CreatedBy").Create(&activity).Error; err != nil {
			return err
		}
		enroll := models.Participation{
			ID:         uuid.NewString(),
			UserID:     userID,
			ActivityID: activity.ID,
			JoinedAt:   time.Now(),
		}
		return tx.Omit("User", "Activity").Create(&enroll).Error
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
	}

	s.DB.Preload("Sport").Preload("CreatedBy").First(&activity, "id = ?", activity.ID)
	list := []models.Activity{activity}
	if err := s.attachDerivedFields(list, userID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	return c.Status(201).JSON(list[0])
}

// UpdateActivity applies a partial update. Only the creator or an admin may
// write; everyone may read.
func (s *ActivityService) UpdateActivity(c *fiber.Ctx) error {
	var activity models.Activity
	if err := s.DB.First(&activity, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "activity not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	if activity.CreatedByID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return c.Status(403).JSON(fiber.Map{"error": "only the creator may modify this activity"})
	}

	type Req struct {
		Title         *string `json:"title"`
		SportID       *string `json:"sport_id"`
		DateTime      *string `json:"date_time"`
		Location      *string `json:"location"`
		Capacity      *int    `json:"capacity"`
		RequiredLevel *string `json:"required_skill_level"`
		Description   *string `json:"description"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return c.Status(400).JSON(fiber.Map{"error": "title cannot be empty"})
		}
		updates["title"] = title
	}
	if req.SportID != nil {
		var sport models.Sport
		if err := s.DB.First(&sport, "id = ?", *req.SportID).Error; err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "sport_id not found"})
		}
		updates["sport_id"] = sport.ID
	}
	if req.DateTime != nil {
		dateTime, err := time.Parse(time.RFC3339, *req.DateTime)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid date_time (use RFC3339)"})
		}
		updates["date_time"] = dateTime
	}
	if req.Location != nil {
		updates["location"] = strings.TrimSpace(*req.Location)
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return c.Status(400).JSON(fiber.Map{"error": "capacity must be a positive integer"})
		}
		updates["capacity"] = *req.Capacity
	}
	if req.RequiredLevel != nil {
		level := models.SkillLevel(*req.RequiredLevel)
		if !level.Valid() {
			return c.Status(400).JSON(fiber.Map{"error": "required_skill_level must be one of beginner, intermediate, advanced, pro"})
		}
		updates["required_level"] = level
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&activity).Updates(updates).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "update failed"})
		}
	}

	s.DB.Preload("Sport").Preload("CreatedBy").First(&activity, "id = ?", activity.ID)
	list := []models.Activity{activity}
	if err := s.attachDerivedFields(list, middleware.UserID(c)); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(list[0])
}

// DeleteActivity removes the activity and its participations in one
// transaction. Creator or admin only.
func (s *ActivityService) DeleteActivity(c *fiber.Ctx) error {
	var activity models.Activity
	if err := s.DB.First(&activity, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "activity not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	if activity.CreatedByID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return c.Status(403).JSON(fiber.Map{"error": "only the creator may delete this activity"})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("activity_id = ?", activity.ID).Delete(&models.Participation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Activity{}, "id = ?", activity.ID).Error
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "delete failed"})
	}
	return c.SendStatus(204)
}

// attachDerivedFields fills the computed participant count, fullness, and
// (when a caller is known) has-joined flags from live participation rows.
func (s *ActivityService) attachDerivedFields(activities []models.Activity, userID string) error {
	if len(activities) == 0 {
		return nil
	}
	ids := make([]string, len(activities))
	for i := range activities {
		ids[i] = activities[i].ID
	}

	type countRow struct {
		ActivityID string
		N          int64
	}
	var rows []countRow
	if err := s.DB.Model(&models.Participation{}).
		Select("activity_id, COUNT(*) AS n").
		Where("activity_id IN ?", ids).
		Group("activity_id").
		Scan(&rows).Error; err != nil {
		return err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.ActivityID] = r.N
	}

	joined := map[string]bool{}
	if userID != "" {
		var mine []string
		if err := s.DB.Model(&models.Participation{}).
			Where("user_id = ? AND activity_id IN ?", userID, ids).
			Pluck("activity_id", &mine).Error; err != nil {
			return err
		}
		for _, id := range mine {
			joined[id] = true
		}
	}

	for i := range activities {
		a := &activities[i]
		a.ParticipantsCount = counts[a.ID]
		a.IsFull = a.ParticipantsCount >= int64(a.Capacity)
		if userID != "" {
			has := joined[a.ID]
			a.HasJoined = &has
		}
	}
	return nil
}
