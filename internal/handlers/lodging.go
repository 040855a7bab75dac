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

type CreateLodgingRequest struct {
	TripID             uint   `json:"trip_id" binding:"required"`
	Name               string `json:"name" binding:"required"`
	Address            string `json:"address"`
	CheckIn            string `json:"check_in" binding:"required"`
	CheckOut           string `json:"check_out" binding:"required"`
	ConfirmationNumber string `json:"confirmation_number"`
	Notes              string `json:"notes"`
	URL                string `json:"url"`
}

type UpdateLodgingRequest struct {
	Name               *string `json:"name"`
	Address            *string `json:"address"`
	CheckIn            *string `json:"check_in"`
	CheckOut           *string `json:"check_out"`
	ConfirmationNumber *string `json:"confirmation_number"`
	Notes              *string `json:"notes"`
	URL                *string `json:"url"`
}

func CreateLodging(ctx *gin.Context) {
	var req CreateLodgingRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if _, ok := requireTripRole(ctx, req.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	checkIn, err := parseDate(req.CheckIn)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check_in"})
		return
	}

	checkOut, err := parseDate(req.CheckOut)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check_out"})
		return
	}

	lodging := models.Lodging{
		TripID:             req.TripID,
		Name:               req.Name,
		Address:            req.Address,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		ConfirmationNumber: req.ConfirmationNumber,
		Notes:              req.Notes,
		URL:                req.URL,
	}

	if err := db.DB.Create(&lodging).Error; err != nil {
		log.Printf("Failed to create lodging: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lodging"})
		return
	}

	BroadcastTripRefresh(req.TripID)

	ctx.JSON(http.StatusCreated, lodging)
}

func UpdateLodging(ctx *gin.Context) {
	lodgingID, err := utils.ParseUintParam(ctx, "lodging_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var lodging models.Lodging

	if err := db.DB.First(&lodging, lodgingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Lodging not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lodging"})
		}
		return
	}

	if _, ok := requireTripRole(ctx, lodging.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	var req UpdateLodgingRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.ConfirmationNumber != nil {
		updates["confirmation_number"] = *req.ConfirmationNumber
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.URL != nil {
		updates["url"] = *req.URL
	}
	if req.CheckIn != nil {
		checkIn, err := parseDate(*req.CheckIn)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check_in"})
			return
		}
		updates["check_in"] = checkIn
	}
	if req.CheckOut != nil {
		checkOut, err := parseDate(*req.CheckOut)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check_out"})
			return
		}
		updates["check_out"] = checkOut
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&lodging).Updates(updates).Error; err != nil {
		log.Printf("Failed to update lodging %d: %v", lodgingID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lodging"})
		return
	}

	BroadcastTripRefresh(lodging.TripID)

	ctx.JSON(http.StatusOK, lodging)
}

func DeleteLodging(ctx *gin.Context) {
	lodgingID, err := utils.ParseUintParam(ctx, "lodging_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var lodging models.Lodging

	if err := db.DB.First(&lodging, lodgingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Lodging not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lodging"})
		}
		return
	}

	if _, ok := requireTripRole(ctx, lodging.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	if err := db.DB.Delete(&lodging).Error; err != nil {
		log.Printf("Failed to delete lodging %d: %v", lodgingID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lodging"})
		return
	}

	BroadcastTripRefresh(lodging.TripID)

	ctx.Status(http.StatusNoContent)
}
