package models

import "time"

type EmailSubscriber struct {
	ID                uint      `gorm:"primarykey"`
	Email             string    `gorm:"uniqueIndex;not null"`
	IsVerified        bool      `gorm:"default:false"`
	VerificationToken string    `gorm:"uniqueIndex"`
	CreatedAt         time.Time
}
