package models

import "gorm.io/gorm"

type PackingItem struct {
	gorm.Model

	TripID   uint   `gorm:"not null;index"`
	Name     string `gorm:"not null"`
	Category string `gorm:"not null;default:General"`
	Quantity int    `gorm:"not null;default:1"`
	IsPacked bool   `gorm:"not null;default:false"`

	// Relationships
	Trip Trip `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
