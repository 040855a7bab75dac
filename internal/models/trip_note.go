package models

import "gorm.io/gorm"

type TripNote struct {
	gorm.Model

	TripID  uint   `gorm:"not null;index"`
	Content string `gorm:"not null"`

	// Relationships
	Trip Trip `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
