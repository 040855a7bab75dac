package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TravelStyleAdventure = "ADVENTURE"
	TravelStyleRelax     = "RELAX"
	TravelStyleCulture   = "CULTURE"
	TravelStyleRoadtrip  = "ROADTRIP"
	TravelStyleOther     = "OTHER"
)

type Trip struct {
	gorm.Model

	Name        string    `gorm:"not null"`
	Destination string    `gorm:"not null"`
	Description string
	CoverImage  string
	StartDate   time.Time `gorm:"not null"`
	EndDate     time.Time `gorm:"not null"`
	TravelStyle string    `gorm:"not null;default:ADVENTURE"`
	Currency    string    `gorm:"not null;default:USD"`
	CreatedByID uint      `gorm:"index"`

	// Relationships
	CreatedBy  User               `gorm:"foreignKey:CreatedByID" json:"-"`
	Members    []TripMember       `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Invites    []TripInvite       `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Days       []TripDay          `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Lodgings   []Lodging          `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Segments   []TransportSegment `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Packing    []PackingItem      `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tasks      []TripTask         `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Expenses   []Expense          `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notes      []TripNote         `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Companions []TravelCompanion  `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
