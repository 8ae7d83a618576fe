package models

import "gorm.io/gorm"

// User represents an authenticated owner of a deck session
type User struct {
	gorm.Model
	Auth0ID    string      `gorm:"uniqueIndex;not null;size:200"`
	Nickname   string      `gorm:"size:100"`
	SavedDecks []SavedDeck `gorm:"foreignKey:UserID"`
}
