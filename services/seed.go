package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"sportconnect-backend/models"
	"sportconnect-backend/utils"
)

const seedPassword = "DemoSportConnect!123"

// SeedDemo populates demo users, sports and activities for local development.
// Every step is get-or-create, so reruns are harmless. Production startup
// refuses the flag before this is ever reached.
func SeedDemo(db *gorm.DB) error {
	usernames := []string{"demo", "moussa", "aissatou", "fatou", "ibrahima"}
	users := make([]models.User, 0, len(usernames))
	for _, name := range usernames {
		user, err := getOrCreateUser(db, name)
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	football, err := getOrCreateSport(db, "Football")
	if err != nil {
		return err
	}
	running, err := getOrCreateSport(db, "Running")
	if err != nil {
		return err
	}
	if _, err := getOrCreateSport(db, "Fitness"); err != nil {
		return err
	}
	if _, err := getOrCreateSport(db, "Basket"); err != nil {
		return err
	}

	now := time.Now()
	demoActivities := []models.Activity{
		{
			Title:         "Futsal tonight",
			SportID:       football.ID,
			DateTime:      now.Add(6 * time.Hour),
			Location:      "Nongo (Conakry)",
			Capacity:      10,
			RequiredLevel: models.SkillIntermediate,
			Description:   "Casual match, good vibes. Bring your boots!",
			CreatedByID:   users[0].ID,
		},
		{
			Title:         "Sunrise run",
			SportID:       running.ID,
			DateTime:      now.Add(18 * time.Hour),
			Location:      "Corniche de Kaloum",
			Capacity:      15,
			RequiredLevel: models.SkillBeginner,
			Description:   "Easy 5k along the water, all levels welcome.",
			CreatedByID:   users[1].ID,
		},
	}
	for _, activity := range demoActivities {
		if err := getOrCreateActivity(db, activity); err != nil {
			return err
		}
	}

	log.Printf("✅ Demo data seeded (%d users)", len(users))
	return nil
}

func getOrCreateUser(db *gorm.DB, username string) (models.User, error) {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	hash, err := utils.HashPassword(seedPassword)
	if err != nil {
		return models.User{}, err
	}
	user = models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@sportconnect.local",
		PasswordHash: hash,
		City:         "Conakry",
		SkillLevel:   models.SkillBeginner,
	}
	return user, db.Create(&user).Error
}

func getOrCreateSport(db *gorm.DB, name string) (models.Sport, error) {
	var sport models.Sport
	err := db.Where("name = ?", name).First(&sport).Error
	if err == nil {
		return sport, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Sport{}, err
	}

	sport = models.Sport{ID: uuid.NewString(), Name: name, Slug: slug.Make(name)}
	return sport, db.Create(&sport).Error
}

func getOrCreateActivity(db *gorm.DB, activity models.Activity) error {
	var existing models.Activity
	err := db.Where("title = ? AND created_by_id = ?", activity.Title, activity.CreatedByID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	activity.ID = uuid.NewString()
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Sport", "CreatedBy").Create(&activity).Error; err != nil {
			return err
		}
		enroll := models.Participation{
			ID:         uuid.NewString(),
			UserID:     activity.CreatedByID,
			ActivityID: activity.ID,
			JoinedAt:   time.Now(),
		}
		return tx.Omit("User", "Activity").Create(&enroll).Error
	})
}
