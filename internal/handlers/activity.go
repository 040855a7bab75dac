package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripeasy-dev/tripeasy/db"
	"github.com/tripeasy-dev/tripeasy/internal/models"
	"github.com/tripeasy-dev/tripeasy/internal/utils"
	"gorm.io/gorm"
)

type CreateActivityRequest struct {
	DayID        uint     `json:"day_id" binding:"required"`
	Title        string   `json:"title" binding:"required,min=2"`
	Subtitle     string   `json:"subtitle"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	LocationCity string   `json:"location_city"`
	LocationName string   `json:"location_name"`
	LocationLat  *float64 `json:"location_lat"`
	LocationLng  *float64 `json:"location_lng"`
	Notes        string   `json:"notes"`
	Category     string   `json:"category"`
	Cost         *float64 `json:"cost"`
	BookingLink  string   `json:"booking_link"`
}

type UpdateActivityRequest struct {
	Title        *string  `json:"title"`
	Subtitle     *string  `json:"subtitle"`
	StartTime    *string  `json:"start_time"`
	EndTime      *string  `json:"end_time"`
	LocationCity *string  `json:"location_city"`
	LocationName *string  `json:"location_name"`
	LocationLat  *float64 `json:"location_lat"`
	LocationLng  *float64 `json:"location_lng"`
	Notes        *string  `json:"notes"`
	Category     *string  `json:"category"`
	Cost         *float64 `json:"cost"`
	BookingLink  *string  `json:"booking_link"`
}

func parseOptionalTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := parseDate(value)

	if err != nil {
		return nil, err
	}

	return &t, nil
}

// activityTripID resolves the owning trip through the day row.
func activityTripID(dayID uint) (uint, error) {
	var day models.TripDay

	if err := db.DB.First(&day, dayID).Error; err != nil {
		return 0, err
	}

	return day.TripID, nil
}

func CreateActivity(ctx *gin.Context) {
	var req CreateActivityRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	tripID, err := activityTripID(req.DayID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Trip day not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trip day"})
		}
		return
	}

	if _, ok := requireTripRole(ctx, tripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	startTime, err := parseOptionalTime(req.StartTime)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_time"})
		return
	}

	endTime, err := parseOptionalTime(req.EndTime)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_time"})
		return
	}

	if req.Category == "" {
		req.Category = models.ActivityCategoryOther
	}

	activity := models.Activity{
		DayID:        req.DayID,
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		StartTime:    startTime,
		EndTime:      endTime,
		LocationCity: req.LocationCity,
		LocationName: req.LocationName,
		LocationLat:  req.LocationLat,
		LocationLng:  req.LocationLng,
		Notes:        req.Notes,
		Category:     req.Category,
		Cost:         req.Cost,
		BookingLink:  req.BookingLink,
	}

	if err := db.DB.Create(&activity).Error; err != nil {
		log.Printf("Failed to create activity: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity"})
		return
	}

	BroadcastTripRefresh(tripID)

	ctx.JSON(http.StatusCreated, activity)
}

func UpdateActivity(ctx *gin.Context) {
	activityID, err := utils.ParseUintParam(ctx, "activity_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var activity models.Activity

	if err := db.DB.First(&activity, activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve activity"})
		}
		return
	}

	tripID, err := activityTripID(activity.DayID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trip day"})
		return
	}

	if _, ok := requireTripRole(ctx, tripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	var req UpdateActivityRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Subtitle != nil {
		updates["subtitle"] = *req.Subtitle
	}
	if req.LocationCity != nil {
		updates["location_city"] = *req.LocationCity
	}
	if req.LocationName != nil {
		updates["location_name"] = *req.LocationName
	}
	if req.LocationLat != nil {
		updates["location_lat"] = *req.LocationLat
	}
	if req.LocationLng != nil {
		updates["location_lng"] = *req.LocationLng
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Cost != nil {
		updates["cost"] = *req.Cost
	}
	if req.BookingLink != nil {
		updates["booking_link"] = *req.BookingLink
	}
	if req.StartTime != nil {
		startTime, err := parseOptionalTime(*req.StartTime)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_time"})
			return
		}
		updates["start_time"] = startTime
	}
	if req.EndTime != nil {
		endTime, err := parseOptionalTime(*req.EndTime)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_time"})
			return
		}
		updates["end_time"] = endTime
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&activity).Updates(updates).Error; err != nil {
		log.Printf("Failed to update activity %d: %v", activityID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update activity"})
		return
	}

	BroadcastTripRefresh(tripID)

	ctx.JSON(http.StatusOK, activity)
}

func DeleteActivity(ctx *gin.Context) {
	activityID, err := utils.ParseUintParam(ctx, "activity_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var activity models.Activity

	if err := db.DB.First(&activity, activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve activity"})
		}
		return
	}

	tripID, err := activityTripID(activity.DayID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trip day"})
		return
	}

	if _, ok := requireTripRole(ctx, tripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	if err := db.DB.Delete(&activity).Error; err != nil {
		log.Printf("Failed to delete activity %d: %v", activityID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete activity"})
		return
	}

	BroadcastTripRefresh(tripID)

	ctx.Status(http.StatusNoContent)
}
