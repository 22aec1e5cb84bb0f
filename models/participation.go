package models

import (
	"time"
)

// Participation reserves one slot in an activity for a user. The composite
// unique index is the hard invariant: one row per (user, activity), enforced
// by the database regardless of what the application checks first.
type Participation struct {
	ID         string `gorm:"primaryKey" json:"id"`
	UserID     string `gorm:"not null;uniqueIndex:idx_participation_user_activity" json:"user_id"`
	ActivityID string `gorm:"not null;uniqueIndex:idx_participation_user_activity;index" json:"activity_id"`

	User     User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Activity Activity `json:"activity,omitempty" gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE"`

	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`
}
