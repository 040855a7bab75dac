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

type CreateCompanionRequest struct {
	TripID uint   `json:"trip_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"omitempty,email"`
	Status string `json:"status"`
}

type UpdateCompanionRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Status *string `json:"status"`
}

func CreateCompanion(ctx *gin.Context) {
	var req CreateCompanionRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if _, ok := requireTripRole(ctx, req.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	if req.Status == "" {
		req.Status = "INVITED"
	}

	companion := models.TravelCompanion{
		TripID: req.TripID,
		Name:   req.Name,
		Email:  req.Email,
		Status: req.Status,
	}

	if err := db.DB.Create(&companion).Error; err != nil {
		log.Printf("Failed to add companion: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add companion"})
		return
	}

	BroadcastTripRefresh(req.TripID)

	ctx.JSON(http.StatusCreated, companion)
}

func UpdateCompanion(ctx *gin.Context) {
	companionID, err := utils.ParseUintParam(ctx, "companion_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var companion models.TravelCompanion

	if err := db.DB.First(&companion, companionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Companion not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve companion"})
		}
		return
	}

	if _, ok := requireTripRole(ctx, companion.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	var req UpdateCompanionRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&companion).Updates(updates).Error; err != nil {
		log.Printf("Failed to update companion %d: %v", companionID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update companion"})
		return
	}

	BroadcastTripRefresh(companion.TripID)

	ctx.JSON(http.StatusOK, companion)
}

func DeleteCompanion(ctx *gin.Context) {
	companionID, err := utils.ParseUintParam(ctx, "companion_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var companion models.TravelCompanion

	if err := db.DB.First(&companion, companionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Companion not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve companion"})
		}
		return
	}

	if _, ok := requireTripRole(ctx, companion.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	if err := db.DB.Delete(&companion).Error; err != nil {
		log.Printf("Failed to delete companion %d: %v", companionID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete companion"})
		return
	}

	BroadcastTripRefresh(companion.TripID)

	ctx.Status(http.StatusNoContent)
}
