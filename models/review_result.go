package models

import (
	"time"
)

type ReviewResult struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          uint      `gorm:"not null;index"`
	User            User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Tags            string    `gorm:"size:500"` // active tags at the time of the review, comma separated
	TimeSeconds     int       `gorm:"not null"`
	CorrectAttempts int       `gorm:"not null"`
	TotalAttempts   int       `gorm:"not null"`
	PlayedAt        time.Time `gorm:"autoCreateTime"`
}
