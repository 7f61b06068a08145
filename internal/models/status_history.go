package models

import "time"

// StatusHistory is an append-only log. A row is written exactly once, at the
// moment a service's status actually changes, carrying the new status.
type StatusHistory struct {
	ID        uint      `gorm:"primarykey"`
	ServiceID uint      `gorm:"not null;index"`
	Status    string    `gorm:"not null"`
	Timestamp time.Time `gorm:"not null;index"`

	// Relationships
	Service Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
