package models

// Incident.Status and Incident.Resolved are independent fields; the pair is
// never validated together, so status "Resolved" with resolved=false is a
// legal record.
type Incident struct {
	BaseModel

	ServiceID   uint   `gorm:"not null;index"`
	Status      string `gorm:"not null;default:Ongoing"`
	Description string `gorm:"not null"`
	Resolved    bool   `gorm:"default:false"`

	// Relationships
	Service Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
