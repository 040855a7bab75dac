package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ActivityCategorySightseeing = "SIGHTSEEING"
	ActivityCategoryFood        = "FOOD"
	ActivityCategoryTransport   = "TRANSPORT"
	ActivityCategoryOutdoors    = "OUTDOORS"
	ActivityCategoryOther       = "OTHER"
)

type Activity struct {
	gorm.Model

	DayID        uint   `gorm:"not null;index"`
	Title        string `gorm:"not null"`
	Subtitle     string
	StartTime    *time.Time
	EndTime      *time.Time
	LocationCity string
	LocationName string
	LocationLat  *float64
	LocationLng  *float64
	Notes        string
	Category     string `gorm:"not null;default:OTHER"`
	Cost         *float64
	BookingLink  string

	// Relationships
	Day TripDay `gorm:"foreignKey:DayID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
