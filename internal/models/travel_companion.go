package models

import "gorm.io/gorm"

type TravelCompanion struct {
	gorm.Model

	TripID uint   `gorm:"not null;index"`
	Name   string `gorm:"not null"`
	Email  string
	Status string `gorm:"not null;default:INVITED"` // "INVITED", "CONFIRMED", "DECLINED"

	// Relationships
	Trip Trip `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
