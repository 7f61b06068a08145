package models

type Organization struct {
	BaseModel

	Name string `gorm:"uniqueIndex;not null"`

	// Relationships
	Services []Service `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Users    []User    `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
