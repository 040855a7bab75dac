package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripeasy-dev/tripeasy/internal/authz"
	"github.com/tripeasy-dev/tripeasy/internal/models"
	"github.com/tripeasy-dev/tripeasy/internal/utils"
)

// requireTripRole resolves the acting user's membership on a trip and writes
// the error response when access is denied. An empty roles list admits any
// member.
func requireTripRole(ctx *gin.Context, tripID uint, roles ...string) (*models.TripMember, bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}

	membership, err := authz.RequireTripRole(userID, tripID, roles...)

	if err != nil {
		switch {
		case errors.Is(err, authz.ErrNotMember):
			ctx.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this trip"})
		case errors.Is(err, authz.ErrInsufficientRole):
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Your role does not permit this action"})
		default:
			log.Printf("Failed to check trip membership: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return nil, false
	}

	return membership, true
}

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
