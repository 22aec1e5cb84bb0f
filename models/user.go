package models

import (
	"time"
)

// SkillLevel grades both user profiles and activity requirements.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillPro          SkillLevel = "pro"
)

// Valid reports whether the level is one of the supported values.
func (l SkillLevel) Valid() bool {
	switch l {
	case SkillBeginner, SkillIntermediate, SkillAdvanced, SkillPro:
		return true
	}
	return false
}

// User is a registered account. The password hash never leaves the API.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `gorm:"not null" json:"-"`

	FirstName  string     `json:"first_name,omitempty"`
	LastName   string     `json:"last_name,omitempty"`
	City       string     `json:"city,omitempty"`
	District   string     `json:"district,omitempty"`
	Bio        string     `json:"bio,omitempty"`
	SkillLevel SkillLevel `gorm:"type:varchar(20);default:'beginner'" json:"skill_level"`

	ProfilePhotoURL *string `json:"profile_photo_url,omitempty"`

	IsAdmin bool `gorm:"default:false" json:"is_admin"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
