package models

import (
	"time"
)

// RefreshToken is a single-use, rotating credential. The ID doubles as the
// opaque token handed to the client; rotation deletes the row and issues a
// new one, so a replayed token finds nothing to match.
type RefreshToken struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index" json:"user_id"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
