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

type CreateSegmentRequest struct {
	TripID             uint   `json:"trip_id" binding:"required"`
	Type               string `json:"type" binding:"required"`
	Carrier            string `json:"carrier"`
	ConfirmationNumber string `json:"confirmation_number"`
	DepartureCity      string `json:"departure_city" binding:"required"`
	ArrivalCity        string `json:"arrival_city" binding:"required"`
	DepartureTime      string `json:"departure_time" binding:"required"`
	ArrivalTime        string `json:"arrival_time" binding:"required"`
	Seat               string `json:"seat"`
}

type UpdateSegmentRequest struct {
	Type               *string `json:"type"`
	Carrier            *string `json:"carrier"`
	ConfirmationNumber *string `json:"confirmation_number"`
	DepartureCity      *string `json:"departure_city"`
	ArrivalCity        *string `json:"arrival_city"`
	DepartureTime      *string `json:"departure_time"`
	ArrivalTime        *string `json:"arrival_time"`
	Seat               *string `json:"seat"`
}

func CreateSegment(ctx *gin.Context) {
	var req CreateSegmentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if _, ok := requireTripRole(ctx, req.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	departureTime, err := parseDate(req.DepartureTime)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid departure_time"})
		return
	}

	arrivalTime, err := parseDate(req.ArrivalTime)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid arrival_time"})
		return
	}

	segment := models.TransportSegment{
		TripID:             req.TripID,
		Type:               req.Type,
		Carrier:            req.Carrier,
		ConfirmationNumber: req.ConfirmationNumber,
		DepartureCity:      req.DepartureCity,
		ArrivalCity:        req.ArrivalCity,
		DepartureTime:      departureTime,
		ArrivalTime:        arrivalTime,
		Seat:               req.Seat,
	}

	if err := db.DB.Create(&segment).Error; err != nil {
		log.Printf("Failed to create transport segment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transport segment"})
		return
	}

	BroadcastTripRefresh(req.TripID)

	ctx.JSON(http.StatusCreated, segment)
}

func UpdateSegment(ctx *gin.Context) {
	segmentID, err := utils.ParseUintParam(ctx, "segment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var segment models.TransportSegment

	if err := db.DB.First(&segment, segmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Transport segment not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transport segment"})
		}
		return
	}

	if _, ok := requireTripRole(ctx, segment.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	var req UpdateSegmentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Carrier != nil {
		updates["carrier"] = *req.Carrier
	}
	if req.ConfirmationNumber != nil {
		updates["confirmation_number"] = *req.ConfirmationNumber
	}
	if req.DepartureCity != nil {
		updates["departure_city"] = *req.DepartureCity
	}
	if req.ArrivalCity != nil {
		updates["arrival_city"] = *req.ArrivalCity
	}
	if req.Seat != nil {
		updates["seat"] = *req.Seat
	}
	if req.DepartureTime != nil {
		departureTime, err := parseDate(*req.DepartureTime)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid departure_time"})
			return
		}
		updates["departure_time"] = departureTime
	}
	if req.ArrivalTime != nil {
		arrivalTime, err := parseDate(*req.ArrivalTime)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid arrival_time"})
			return
		}
		updates["arrival_time"] = arrivalTime
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&segment).Updates(updates).Error; err != nil {
		log.Printf("Failed to update transport segment %d: %v", segmentID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transport segment"})
		return
	}

	BroadcastTripRefresh(segment.TripID)

	ctx.JSON(http.StatusOK, segment)
}

func DeleteSegment(ctx *gin.Context) {
	segmentID, err := utils.ParseUintParam(ctx, "segment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var segment models.TransportSegment

	if err := db.DB.First(&segment, segmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Transport segment not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transport segment"})
		}
		return
	}

	if _, ok := requireTripRole(ctx, segment.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	if err := db.DB.Delete(&segment).Error; err != nil {
		log.Printf("Failed to delete transport segment %d: %v", segmentID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transport segment"})
		return
	}

	BroadcastTripRefresh(segment.TripID)

	ctx.Status(http.StatusNoContent)
}
