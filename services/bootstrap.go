package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sportconnect-backend/config"
	"sportconnect-backend/models"
	"sportconnect-backend/utils"
)

// EnsureAdminUser creates the bootstrap administrator account when configured
// and not already present. No-op when the credentials are unset.
func EnsureAdminUser(db *gorm.DB, cfg config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}

	var existing models.User
	err := db.Where("username = ?", cfg.AdminUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := models.User{
		ID:           uuid.NewString(),
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		IsAdmin:      true,
		SkillLevel:   models.SkillBeginner,
	}
	return db.Create(&admin).Error
}
