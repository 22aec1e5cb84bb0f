package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sportconnect-backend/config"
	"sportconnect-backend/models"
	"sportconnect-backend/utils"
)

type AuthService struct {
	DB  *gorm.DB
	Cfg config.Config
}

func NewAuthService(db *gorm.DB, cfg config.Config) *AuthService {
	return &AuthService{DB: db, Cfg: cfg}
}

// Register creates an account. Failures come back as field-scoped messages so
// the client can render them next to the right input.
func (s *AuthService) Register(c *fiber.Ctx) error {
	type Req struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"password_confirm"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}

	fieldErrors := map[string][]string{}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		fieldErrors["username"] = append(fieldErrors["username"], "username is required")
	} else {
		var existing models.User
		err := s.DB.Where("username = ?", req.Username).First(&existing).Error
		if err == nil {
			fieldErrors["username"] = append(fieldErrors["username"], "this username is already taken")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(500).JSON(fiber.Map{"error": "DB error"})
		}
	}

	if req.Password != req.PasswordConfirm {
		fieldErrors["password_confirm"] = append(fieldErrors["password_confirm"], "passwords do not match")
	}
	if msgs := utils.ValidatePassword(req.Password, req.Username, req.Email); len(msgs) > 0 {
		fieldErrors["password"] = append(fieldErrors["password"], msgs...)
	}

	if len(fieldErrors) > 0 {
		return c.Status(400).JSON(fiber.Map{"errors": fieldErrors})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to hash password"})
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		SkillLevel:   models.SkillBeginner,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		// The unique index can still fire under a concurrent register.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(400).JSON(fiber.Map{
				"errors": map[string][]string{"username": {"this username is already taken"}},
			})
		}
		log.Printf("[AUTH] register failed for %s: %v", user.Username, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	return c.Status(201).JSON(user)
}

// IssueToken exchanges username+password for an access/refresh pair.
func (s *AuthService) IssueToken(c *fiber.Ctx) error {
	type Req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "username and password are required"})
	}

	var user models.User
	if err := s.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(401).JSON(fiber.Map{"error": "invalid username or password"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "invalid username or password"})
	}

	access, refresh, err := s.issueTokenPair(user)
	if err != nil {
		log.Printf("[AUTH] token issuance failed for %s: %v", user.Username, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to issue tokens"})
	}
	return c.JSON(fiber.Map{"access": access, "refresh": refresh})
}

// RefreshToken rotates a refresh token: the presented token is consumed and a
// fresh pair is returned. A replayed or expired token gets 401.
func (s *AuthService) RefreshToken(c *fiber.Ctx) error {
	type Req struct {
		Refresh string `json:"refresh"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.Refresh == "" {
		return c.Status(400).JSON(fiber.Map{"error": "refresh is required"})
	}

	var user models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var stored models.RefreshToken
		if err := tx.First(&stored, "id = ?", req.Refresh).Error; err != nil {
			return err
		}
		if stored.ExpiresAt.Before(time.Now()) {
			// Expired rows are also swept periodically; consume this one now.
			tx.Delete(&stored)
			return gorm.ErrRecordNotFound
		}
		if err := tx.First(&user, "id = ?", stored.UserID).Error; err != nil {
			return err
		}
		return tx.Delete(&stored).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(401).JSON(fiber.Map{"error": "invalid or expired refresh token"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	access, refresh, err := s.issueTokenPair(user)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to issue tokens"})
	}
	return c.JSON(fiber.Map{"access": access, "refresh": refresh})
}

func (s *AuthService) issueTokenPair(user models.User) (access, refresh string, err error) {
	access, err = utils.GenerateAccessToken(user, s.Cfg.JWTSecret, s.Cfg.AccessTokenTTL)
	if err != nil {
		return "", "", err
	}
	token := models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.Cfg.RefreshTokenTTL),
	}
	if err = s.DB.Create(&token).Error; err != nil {
		return "", "", err
	}
	return access, token.ID, nil
}
