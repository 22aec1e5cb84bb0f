package services_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sportconnect-backend/config"
	"sportconnect-backend/handlers"
	"sportconnect-backend/models"
	"sportconnect-backend/services"
	"sportconnect-backend/utils"
)

const testPassword = "CorrectHorse!42"

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:            "0",
		Environment:     "development",
		DatabaseURL:     "test",
		JWTSecret:       "test-secret",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		UploadDir:       t.TempDir(),
	}
}

// newTestApp builds the full route surface over a fresh in-memory database.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, config.Config) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// Every pooled connection to :memory: is its own database; keep one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Sport{},
		&models.Activity{},
		&models.Participation{},
		&models.RefreshToken{},
	))

	cfg := testConfig(t)
	app := fiber.New()
	api := app.Group("/api")
	handlers.SetupAuthRoutes(api, services.NewAuthService(db, cfg))
	handlers.SetupUserRoutes(api, services.NewUserService(db, cfg))
	handlers.SetupSportRoutes(api, services.NewSportService(db), cfg.JWTSecret)
	handlers.SetupActivityRoutes(api, services.NewActivityService(db), cfg.JWTSecret)
	handlers.SetupParticipationRoutes(api, services.NewParticipationService(db), cfg.JWTSecret)

	return app, db, cfg
}

func createUser(t *testing.T, db *gorm.DB, username string, admin bool) models.User {
	t.Helper()
	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)
	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		IsAdmin:      admin,
		SkillLevel:   models.SkillBeginner,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createSport(t *testing.T, db *gorm.DB, name string) models.Sport {
	t.Helper()
	sport := models.Sport{ID: uuid.NewString(), Name: name, Slug: name}
	require.NoError(t, db.Create(&sport).Error)
	return sport
}

func tokenFor(t *testing.T, cfg config.Config, user models.User) string {
	t.Helper()
	token, err := utils.GenerateAccessToken(user, cfg.JWTSecret, cfg.AccessTokenTTL)
	require.NoError(t, err)
	return token
}

// request performs a JSON request against the app and returns the response.
func request(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func participationCount(t *testing.T, db *gorm.DB, activityID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Participation{}).
		Where("activity_id = ?", activityID).Count(&count).Error)
	return count
}

// createActivity inserts an activity plus the creator's auto-enrollment,
// mirroring what CreateActivity does, for tests that need fixtures fast.
func createActivity(t *testing.T, db *gorm.DB, sport models.Sport, creator models.User, capacity int) models.Activity {
	t.Helper()
	activity := models.Activity{
		ID:            uuid.NewString(),
		Title:         "Test Activity",
		SportID:       sport.ID,
		DateTime:      time.Now().Add(24 * time.Hour),
		Location:      "Test Field",
		Capacity:      capacity,
		RequiredLevel: models.SkillBeginner,
		CreatedByID:   creator.ID,
	}
	require.NoError(t, db.Omit("Sport", "CreatedBy").Create(&activity).Error)
	enroll := models.Participation{
		ID:         uuid.NewString(),
		UserID:     creator.ID,
		ActivityID: activity.ID,
		JoinedAt:   time.Now(),
	}
	require.NoError(t, db.Omit("User", "Activity").Create(&enroll).Error)
	return activity
}
