package models

import "time"

type Service struct {
	BaseModel

	Name             string    `gorm:"not null"`
	Status           string    `gorm:"not null;default:Operational"`
	OrganizationID   uint      `gorm:"not null;index"`
	UptimePercentage float64   `gorm:"default:100"`
	LastUptimeCheck  time.Time

	// Relationships
	Organization  Organization    `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	StatusHistory []StatusHistory `gorm:"foreignKey:ServiceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Incidents     []Incident      `gorm:"foreignKey:ServiceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
