// Package authz answers "may user U act on trip T" for every trip-scoped
// endpoint. Every check is a fresh membership lookup; nothing is cached.
package authz

import (
	"errors"

	"github.com/tripeasy-dev/tripeasy/db"
	"github.com/tripeasy-dev/tripeasy/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotMember        = errors.New("user is not a member of this trip")
	ErrInsufficientRole = errors.New("user role does not permit this action")
)

// GetTripMembership returns the membership row binding the user to the trip,
// or gorm.ErrRecordNotFound when there is none.
func GetTripMembership(userID uint, tripID uint) (*models.TripMember, error) {
	var membership models.TripMember

	err := db.DB.Where("user_id = ? AND trip_id = ?", userID, tripID).First(&membership).Error

	if err != nil {
		return nil, err
	}

	return &membership, nil
}

// RequireTripRole denies with ErrNotMember when the user has no membership on
// the trip, and with ErrInsufficientRole when the membership role is not in
// roles. An empty roles list admits any member.
func RequireTripRole(userID uint, tripID uint, roles ...string) (*models.TripMember, error) {
	membership, err := GetTripMembership(userID, tripID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotMember
		}
		return nil, err
	}

	if len(roles) == 0 {
		return membership, nil
	}

	for _, role := range roles {
		if membership.Role == role {
			return membership, nil
		}
	}

	return nil, ErrInsufficientRole
}
