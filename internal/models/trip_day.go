package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TripDay struct {
	gorm.Model

	TripID  uint           `gorm:"not null;index"`
	Date    datatypes.Date `gorm:"not null"`
	Summary string

	// Relationships
	Trip       Trip       `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Activities []Activity `gorm:"foreignKey:DayID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
