package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ExpenseCategoryLodging   = "LODGING"
	ExpenseCategoryTransport = "TRANSPORT"
	ExpenseCategoryFood      = "FOOD"
	ExpenseCategoryActivity  = "ACTIVITY"
	ExpenseCategoryMisc      = "MISC"
)

type Expense struct {
	gorm.Model

	TripID      uint      `gorm:"not null;index"`
	Description string    `gorm:"not null"`
	Amount      float64   `gorm:"not null"`
	Currency    string    `gorm:"not null;default:USD"`
	Date        time.Time `gorm:"not null"`
	Category    string    `gorm:"not null;default:MISC"`
	PaidBy      string

	// Relationships
	Trip Trip `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
