package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripeasy-dev/tripeasy/db"
	"github.com/tripeasy-dev/tripeasy/internal/models"
	"github.com/tripeasy-dev/tripeasy/internal/utils"
	"gorm.io/gorm"
)

type UpdateMemberRequest struct {
	Role string `json:"role" binding:"required"`
}

type MemberResponse struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
	TripID uint   `json:"trip_id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func ListMembers(ctx *gin.Context) {
	tripID, err := utils.ParseUintParam(ctx, "trip_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireTripRole(ctx, tripID); !ok {
		return
	}

	var members []models.TripMember

	if err := db.DB.Preload("User").Where("trip_id = ?", tripID).Find(&members).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	response := make([]MemberResponse, 0, len(members))

	for _, member := range members {
		response = append(response, MemberResponse{
			ID:     member.ID,
			UserID: member.UserID,
			TripID: member.TripID,
			Role:   member.Role,
			Name:   member.User.Name,
			Email:  member.User.Email,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateMemberRole(ctx *gin.Context) {
	tripID, err := utils.ParseUintParam(ctx, "trip_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberID, err := utils.ParseUintParam(ctx, "member_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Member administration is reserved for owners.
	if _, ok := requireTripRole(ctx, tripID, models.RoleOwner); !ok {
		return
	}

	var req UpdateMemberRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Role is required"})
		return
	}

	if !models.IsValidRole(req.Role) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	var member models.TripMember

	if err := db.DB.Where("id = ? AND trip_id = ?", memberID, tripID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		}
		return
	}

	// A trip always keeps at least one owner.
	if member.Role == models.RoleOwner && req.Role != models.RoleOwner {
		lastOwner, err := isLastOwner(tripID, member.ID)
		if err != nil {
			log.Printf("Failed to count trip owners: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if lastOwner {
			ctx.JSON(http.StatusConflict, gin.H{"error": "A trip must keep at least one owner"})
			return
		}
	}

	if err := db.DB.Model(&member).Update("role", req.Role).Error; err != nil {
		log.Printf("Failed to update member %d: %v", memberID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member"})
		return
	}

	ctx.JSON(http.StatusOK, MemberResponse{
		ID:     member.ID,
		UserID: member.UserID,
		TripID: member.TripID,
		Role:   member.Role,
	})
}

func RemoveMember(ctx *gin.Context) {
	tripID, err := utils.ParseUintParam(ctx, "trip_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberID, err := utils.ParseUintParam(ctx, "member_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireTripRole(ctx, tripID, models.RoleOwner); !ok {
		return
	}

	var member models.TripMember

	if err := db.DB.Where("id = ? AND trip_id = ?", memberID, tripID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		}
		return
	}

	if member.Role == models.RoleOwner {
		lastOwner, err := isLastOwner(tripID, member.ID)
		if err != nil {
			log.Printf("Failed to count trip owners: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if lastOwner {
			ctx.JSON(http.StatusConflict, gin.H{"error": "A trip must keep at least one owner"})
			return
		}
	}

	if err := db.DB.Delete(&member).Error; err != nil {
		log.Printf("Failed to remove member %d: %v", memberID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func isLastOwner(tripID uint, memberID uint) (bool, error) {
	var otherOwners int64

	err := db.DB.Model(&models.TripMember{}).
		Where("trip_id = ? AND role = ? AND id != ?", tripID, models.RoleOwner, memberID).
		Count(&otherOwners).Error

	if err != nil {
		return false, err
	}

	return otherOwners == 0, nil
}
