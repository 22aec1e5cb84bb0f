package models

// Sport is a catalog entry. The slug is derived from the name and kept in sync
// by the service layer; activities reference sports, so deletion is blocked
// while any activity points here (RESTRICT).
type Sport struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
}
