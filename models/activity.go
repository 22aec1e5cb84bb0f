package models

import (
	"time"
)

// Activity is a scheduled sports event with a fixed capacity. Capacity is never
// decremented; fullness is always recomputed from live participation rows.
type Activity struct {
	ID      string `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"not null" json:"title"`
	SportID string `gorm:"not null;index" json:"sport_id"`
	Sport   Sport  `json:"sport,omitempty" gorm:"foreignKey:SportID;constraint:OnDelete:RESTRICT"`

	DateTime      time.Time  `gorm:"not null;index" json:"date_time"`
	Location      string     `gorm:"not null" json:"location"`
	Capacity      int        `gorm:"not null" json:"capacity"`
	RequiredLevel SkillLevel `gorm:"type:varchar(20);default:'beginner'" json:"required_skill_level"`
	Description   string     `json:"description,omitempty"`

	CreatedByID string `gorm:"not null;index" json:"created_by_id"`
	CreatedBy   User   `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Calculated fields (not stored in DB)
	ParticipantsCount int64 `json:"participants_count" gorm:"-"`
	IsFull            bool  `json:"is_full" gorm:"-"`
	HasJoined         *bool `json:"has_joined,omitempty" gorm:"-"`
}
