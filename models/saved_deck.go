package models

import (
	"gorm.io/gorm"
)

// SavedDeck is a named snapshot of a user's deck in its JSON wire form
type SavedDeck struct {
	gorm.Model
	Name     string `gorm:"not null;size:100"`
	PublicID string `gorm:"size:100;uniqueIndex"`
	UserID   uint   `gorm:"not null;index"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`

	Data      string `gorm:"type:text;not null" json:"-"`
	CardCount int    `gorm:"default:0"`
	IsPublic  bool   `gorm:"default:false"`
}
