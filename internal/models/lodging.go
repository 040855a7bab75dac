package models

import (
	"time"

	"gorm.io/gorm"
)

type Lodging struct {
	gorm.Model

	TripID             uint      `gorm:"not null;index"`
	Name               string    `gorm:"not null"`
	Address            string
	CheckIn            time.Time `gorm:"not null"`
	CheckOut           time.Time `gorm:"not null"`
	ConfirmationNumber string
	Notes              string
	URL                string

	// Relationships
	Trip Trip `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
