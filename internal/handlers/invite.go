package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripeasy-dev/tripeasy/db"
	"github.com/tripeasy-dev/tripeasy/internal/models"
	"github.com/tripeasy-dev/tripeasy/internal/services"
	"github.com/tripeasy-dev/tripeasy/internal/utils"
	"gorm.io/gorm"
)

// Overridable so tests can stub out delivery.
var sendTripInviteEmail = services.SendTripInviteEmail

type CreateInviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

type InviteResponse struct {
	ID         uint       `json:"id"`
	TripID     uint       `json:"trip_id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Token      string     `json:"token"`
	Status     string     `json:"status"`
	InvitedAt  time.Time  `json:"invited_at"`
	AcceptedAt *time.Time `json:"accepted_at"`
}

type InvitePublicView struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	InvitedAt time.Time `json:"invited_at"`
	Trip      struct {
		ID          uint   `json:"id"`
		Name        string `json:"name"`
		Destination string `json:"destination"`
	} `json:"trip"`
	InvitedBy struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"invited_by"`
}

func inviteResponse(invite models.TripInvite) InviteResponse {
	return InviteResponse{
		ID:         invite.ID,
		TripID:     invite.TripID,
		Email:      invite.Email,
		Role:       invite.Role,
		Token:      invite.Token,
		Status:     invite.Status,
		InvitedAt:  invite.InvitedAt,
		AcceptedAt: invite.AcceptedAt,
	}
}

func ListInvites(ctx *gin.Context) {
	tripID, err := utils.ParseUintParam(ctx, "trip_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireTripRole(ctx, tripID); !ok {
		return
	}

	var invites []models.TripInvite

	if err := db.DB.Where("trip_id = ?", tripID).Order("invited_at DESC").Find(&invites).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invites"})
		return
	}

	response := make([]InviteResponse, 0, len(invites))

	for _, invite := range invites {
		response = append(response, inviteResponse(invite))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateInvite(ctx *gin.Context) {
	tripID, err := utils.ParseUintParam(ctx, "trip_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	// Only owners or editors can invite collaborators.
	if _, ok := requireTripRole(ctx, tripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	var trip models.Trip

	if err := db.DB.First(&trip, tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trip"})
		}
		return
	}

	var req CreateInviteRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Role == "" {
		req.Role = models.RoleViewer
	}

	if !models.IsValidRole(req.Role) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	var existing models.TripInvite

	err = db.DB.Where("trip_id = ? AND email = ? AND status = ?", tripID, req.Email, models.InviteStatusPending).
		First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "An invite has already been sent to this email"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing invite: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := utils.NewInviteToken()

	if err != nil {
		log.Printf("Failed to generate invite token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	invite := models.TripInvite{
		TripID:      tripID,
		Email:       req.Email,
		Role:        req.Role,
		Token:       token,
		Status:      models.InviteStatusPending,
		InvitedByID: currentUser.ID,
		InvitedAt:   time.Now(),
	}

	if err := db.DB.Create(&invite).Error; err != nil {
		// The partial unique index rejects a concurrent duplicate that slipped
		// past the existence check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "An invite has already been sent to this email"})
			return
		}
		log.Printf("Failed to create invite: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invite"})
		return
	}

	err = sendTripInviteEmail(services.TripInviteEmail{
		To:        req.Email,
		Token:     invite.Token,
		TripName:  trip.Name,
		InvitedBy: currentUser.Name,
	})

	if err != nil {
		// Invite creation is synchronous with delivery: roll the row back so a
		// failed send leaves no state behind and the request is retryable.
		if delErr := db.DB.Delete(&invite).Error; delErr != nil {
			log.Printf("Failed to roll back invite %d after delivery failure: %v", invite.ID, delErr)
		}
		log.Printf("Failed to deliver invite email for trip %d: %v", tripID, err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Unable to deliver the invite email"})
		return
	}

	ctx.JSON(http.StatusCreated, inviteResponse(invite))
}

// GetInviteByToken renders the invite landing page projection. Anyone holding
// the token may view it; it reveals only what is needed to decide whether to
// accept.
func GetInviteByToken(ctx *gin.Context) {
	token := ctx.Param("token")

	var invite models.TripInvite

	err := db.DB.Preload("Trip").Preload("InvitedBy").Where("token = ?", token).First(&invite).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Invite not found"})
		} else {
			log.Printf("Failed to retrieve invite: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invite"})
		}
		return
	}

	var view InvitePublicView
	view.ID = invite.ID
	view.Email = invite.Email
	view.Role = invite.Role
	view.Status = invite.Status
	view.InvitedAt = invite.InvitedAt
	view.Trip.ID = invite.Trip.ID
	view.Trip.Name = invite.Trip.Name
	view.Trip.Destination = invite.Trip.Destination
	view.InvitedBy.Name = invite.InvitedBy.Name
	view.InvitedBy.Email = invite.InvitedBy.Email

	ctx.JSON(http.StatusOK, view)
}

func AcceptInvite(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	token := ctx.Param("token")

	var invite models.TripInvite

	err = db.DB.Where("token = ?", token).First(&invite).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Invite not found or expired"})
		} else {
			log.Printf("Failed to retrieve invite: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invite"})
		}
		return
	}

	if invite.Status != models.InviteStatusPending {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Invite already processed"})
		return
	}

	// Membership insert and status flip commit together or not at all, so a
	// failure leaves the invite pending and retryable.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var membership models.TripMember

		err := tx.Where("user_id = ? AND trip_id = ?", userID, invite.TripID).First(&membership).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			membership = models.TripMember{
				UserID: userID,
				TripID: invite.TripID,
				Role:   invite.Role,
			}
			if err := tx.Create(&membership).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		now := time.Now()

		return tx.Model(&invite).Updates(map[string]interface{}{
			"status":      models.InviteStatusAccepted,
			"accepted_at": now,
		}).Error
	})

	if err != nil {
		log.Printf("Failed to accept invite %d: %v", invite.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept invite"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"trip_id": invite.TripID})
}
