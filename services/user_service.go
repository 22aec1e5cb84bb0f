package services

import (
	"errors"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sportconnect-backend/config"
	"sportconnect-backend/middleware"
	"sportconnect-backend/models"
	"sportconnect-backend/utils"
)

type UserService struct {
	DB  *gorm.DB
	Cfg config.Config
}

func NewUserService(db *gorm.DB, cfg config.Config) *UserService {
	return &UserService{DB: db, Cfg: cfg}
}

// GetMe returns the caller's own profile.
func (s *UserService) GetMe(c *fiber.Ctx) error {
	var user models.User
	if err := s.DB.First(&user, "id = ?", middleware.UserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(user)
}

// UpdateMe applies a partial update to the caller's profile. Accepts JSON or
// multipart form data; a "photo" file part replaces the profile photo.
func (s *UserService) UpdateMe(c *fiber.Ctx) error {
	var user models.User
	if err := s.DB.First(&user, "id = ?", middleware.UserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	type Req struct {
		Email      *string `json:"email" form:"email"`
		FirstName  *string `json:"first_name" form:"first_name"`
		LastName   *string `json:"last_name" form:"last_name"`
		City       *string `json:"city" form:"city"`
		District   *string `json:"district" form:"district"`
		Bio        *string `json:"bio" form:"bio"`
		SkillLevel *string `json:"skill_level" form:"skill_level"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	updates := map[string]interface{}{}
	if req.Email != nil {
		updates["email"] = strings.TrimSpace(*req.Email)
	}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.District != nil {
		updates["district"] = *req.District
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.SkillLevel != nil {
		level := models.SkillLevel(*req.SkillLevel)
		if !level.Valid() {
			return c.Status(400).JSON(fiber.Map{"error": "skill_level must be one of beginner, intermediate, advanced, pro"})
		}
		updates["skill_level"] = level
	}

	if photo, err := c.FormFile("photo"); err == nil && photo.Size > 0 {
		url, err := s.storeProfilePhoto(photo)
		if err != nil {
			log.Printf("[USERS] photo upload failed for %s: %v", user.ID, err)
			return c.Status(500).JSON(fiber.Map{"error": "failed to store profile photo"})
		}
		updates["profile_photo_url"] = url
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&user).Updates(updates).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "update failed"})
		}
	}

	s.DB.First(&user, "id = ?", user.ID)
	return c.JSON(user)
}

// DeleteMe removes the account and everything hanging off it: the user's
// activities (with all their participations), the user's own participations
// elsewhere, and any refresh tokens. One transaction, ordered child-first.
func (s *UserService) DeleteMe(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return deleteUserCascade(tx, userID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "user not found"})
		}
		log.Printf("[USERS] cascade delete failed for %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "delete failed"})
	}
	return c.SendStatus(204)
}

// ListUsers is the admin-only paginated user directory.
func (s *UserService) ListUsers(c *fiber.Ctx) error {
	page := utils.PageParam(c)

	var count int64
	if err := s.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	var users []models.User
	if err := s.DB.Order("username ASC").
		Offset(utils.PageOffset(page)).Limit(utils.PageSize).
		Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(utils.Page{Count: count, Page: page, PageSize: utils.PageSize, Results: users})
}

// GetUser is the admin-only user detail view.
func (s *UserService) GetUser(c *fiber.Ctx) error {
	var user models.User
	if err := s.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(user)
}

func (s *UserService) storeProfilePhoto(photo *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(photo.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.NewString() + ext

	if utils.R2Enabled() {
		return utils.UploadFileToR2(photo, "profiles/"+name)
	}
	dest := filepath.Join(s.Cfg.UploadDir, "profiles", name)
	if err := utils.SaveFile(photo, dest); err != nil {
		return "", err
	}
	return "/uploads/profiles/" + name, nil
}

func deleteUserCascade(tx *gorm.DB, userID string) error {
	// Participations in the user's own activities go first, then the
	// activities, then the user's participations elsewhere.
	var activityIDs []string
	if err := tx.Model(&models.Activity{}).
		Where("created_by_id = ?", userID).
		Pluck("id", &activityIDs).Error; err != nil {
		return err
	}
	if len(activityIDs) > 0 {
		if err := tx.Where("activity_id IN ?", activityIDs).Delete(&models.Participation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", activityIDs).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.Participation{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
		return err
	}
	result := tx.Delete(&models.User{}, "id = ?", userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
