package models

import "time"

// Setting is one keyed value of a user's persisted session state
type Setting struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_settings_user_key"`
	Key       string `gorm:"not null;size:100;uniqueIndex:idx_settings_user_key"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}
