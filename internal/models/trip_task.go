package models

import (
	"time"

	"gorm.io/gorm"
)

type TripTask struct {
	gorm.Model

	TripID     uint   `gorm:"not null;index"`
	Title      string `gorm:"not null"`
	DueDate    *time.Time
	AssignedTo string
	IsComplete bool `gorm:"not null;default:false"`

	// Relationships
	Trip Trip `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
