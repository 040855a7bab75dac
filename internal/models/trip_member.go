package models

import "gorm.io/gorm"

const (
	RoleOwner  = "OWNER"
	RoleEditor = "EDITOR"
	RoleViewer = "VIEWER"
)

type TripMember struct {
	gorm.Model

	UserID uint   `gorm:"not null;uniqueIndex:idx_user_trip"`
	TripID uint   `gorm:"not null;uniqueIndex:idx_user_trip"`
	Role   string `gorm:"not null"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Trip Trip `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

// IsValidRole reports whether role is one of OWNER, EDITOR or VIEWER.
func IsValidRole(role string) bool {
	return role == RoleOwner || role == RoleEditor || role == RoleViewer
}
