package models

import (
	"time"

	"gorm.io/gorm"
)

type TransportSegment struct {
	gorm.Model

	TripID             uint      `gorm:"not null;index"`
	Type               string    `gorm:"not null"` // "flight", "train", "bus", "ferry", "car", etc.
	Carrier            string
	ConfirmationNumber string
	DepartureCity      string    `gorm:"not null"`
	ArrivalCity        string    `gorm:"not null"`
	DepartureTime      time.Time `gorm:"not null"`
	ArrivalTime        time.Time `gorm:"not null"`
	Seat               string

	// Relationships
	Trip Trip `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
