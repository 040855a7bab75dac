package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
)

type TripInvite struct {
	gorm.Model

	TripID      uint       `gorm:"not null;index"`
	Email       string     `gorm:"not null;index"`
	Role        string     `gorm:"not null;default:VIEWER"`
	Token       string     `gorm:"uniqueIndex;not null"`
	Status      string     `gorm:"not null;default:pending"`
	InvitedByID uint       `gorm:"not null;index"`
	InvitedAt   time.Time  `gorm:"not null"`
	AcceptedAt  *time.Time

	// Relationships
	Trip      Trip `gorm:"foreignKey:TripID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	InvitedBy User `gorm:"foreignKey:InvitedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
