package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripeasy-dev/tripeasy/db"
	"github.com/tripeasy-dev/tripeasy/internal/models"
	"github.com/tripeasy-dev/tripeasy/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateTripDayRequest struct {
	TripID  uint   `json:"trip_id" binding:"required"`
	Date    string `json:"date" binding:"required"`
	Summary string `json:"summary"`
}

type UpdateTripDayRequest struct {
	Date    *string `json:"date"`
	Summary *string `json:"summary"`
}

func CreateTripDay(ctx *gin.Context) {
	var req CreateTripDayRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if _, ok := requireTripRole(ctx, req.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	date, err := parseDate(req.Date)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}

	day := models.TripDay{
		TripID:  req.TripID,
		Date:    datatypes.Date(date),
		Summary: req.Summary,
	}

	if err := db.DB.Create(&day).Error; err != nil {
		log.Printf("Failed to create trip day: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip day"})
		return
	}

	BroadcastTripRefresh(req.TripID)

	ctx.JSON(http.StatusCreated, day)
}

func UpdateTripDay(ctx *gin.Context) {
	dayID, err := utils.ParseUintParam(ctx, "day_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var day models.TripDay

	if err := db.DB.First(&day, dayID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Trip day not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trip day"})
		}
		return
	}

	if _, ok := requireTripRole(ctx, day.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	var req UpdateTripDayRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Summary != nil {
		updates["summary"] = *req.Summary
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
			return
		}
		updates["date"] = datatypes.Date(date)
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&day).Updates(updates).Error; err != nil {
		log.Printf("Failed to update trip day %d: %v", dayID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trip day"})
		return
	}

	BroadcastTripRefresh(day.TripID)

	ctx.JSON(http.StatusOK, day)
}

func DeleteTripDay(ctx *gin.Context) {
	dayID, err := utils.ParseUintParam(ctx, "day_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var day models.TripDay

	if err := db.DB.First(&day, dayID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Trip day not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trip day"})
		}
		return
	}

	if _, ok := requireTripRole(ctx, day.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("day_id = ?", day.ID).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		return tx.Delete(&day).Error
	})

	if err != nil {
		log.Printf("Failed to delete trip day %d: %v", dayID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip day"})
		return
	}

	BroadcastTripRefresh(day.TripID)

	ctx.Status(http.StatusNoContent)
}
