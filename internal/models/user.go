package models

type User struct {
	BaseModel

	Email          string `gorm:"uniqueIndex;not null"`
	PasswordHash   string `gorm:"not null"`
	Active         bool   `gorm:"default:true"`
	OrganizationID *uint  `gorm:"index"`

	// Relationships
	Organization *Organization `gorm:"foreignKey:OrganizationID"`
	Roles        []Role        `gorm:"many2many:user_roles;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type Role struct {
	BaseModel

	Name        string `gorm:"uniqueIndex;not null"`
	Description string
}

func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}
