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

type MapPoint struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Category string  `json:"category"`
	DayID    uint    `json:"day_id"`
}

type TaskSummary struct {
	ID      uint       `json:"id"`
	Title   string     `json:"title"`
	DueDate *time.Time `json:"due_date"`
}

type TripSummaryResponse struct {
	Trip              TripResponse       `json:"trip"`
	DayCount          int                `json:"day_count"`
	Budget            float64            `json:"budget"`
	CategoryBreakdown map[string]float64 `json:"category_breakdown"`
	UpcomingTasks     []TaskSummary      `json:"upcoming_tasks"`
	MapPoints         []MapPoint         `json:"map_points"`
}

// GetTripSummary aggregates the dashboard view of a trip: budget by category,
// open tasks and the map points derived from located activities.
func GetTripSummary(ctx *gin.Context) {
	tripID, err := utils.ParseUintParam(ctx, "trip_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireTripRole(ctx, tripID); !ok {
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

	dayCount := int(trip.EndDate.Sub(trip.StartDate).Hours()/24) + 1
	if dayCount < 1 {
		dayCount = 1
	}

	var expenses []models.Expense

	if err := db.DB.Where("trip_id = ?", tripID).Find(&expenses).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve expenses"})
		return
	}

	budget := 0.0
	breakdown := make(map[string]float64)

	for _, expense := range expenses {
		budget += expense.Amount
		breakdown[expense.Category] += expense.Amount
	}

	var tasks []models.TripTask

	if err := db.DB.Where("trip_id = ? AND is_complete = ?", tripID, false).
		Order("due_date ASC").
		Limit(5).
		Find(&tasks).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	upcoming := make([]TaskSummary, 0, len(tasks))

	for _, task := range tasks {
		upcoming = append(upcoming, TaskSummary{ID: task.ID, Title: task.Title, DueDate: task.DueDate})
	}

	var activities []models.Activity

	err = db.DB.Joins("JOIN trip_days ON trip_days.id = activities.day_id").
		Where("trip_days.trip_id = ? AND trip_days.deleted_at IS NULL", tripID).
		Where("activities.location_lat IS NOT NULL AND activities.location_lng IS NOT NULL").
		Find(&activities).Error

	if err != nil {
		log.Printf("Failed to retrieve map points for trip %d: %v", tripID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve activities"})
		return
	}

	points := make([]MapPoint, 0, len(activities))

	for _, activity := range activities {
		if activity.LocationLat == nil || activity.LocationLng == nil {
			continue
		}
		points = append(points, MapPoint{
			ID:       activity.ID,
			Title:    activity.Title,
			Lat:      *activity.LocationLat,
			Lng:      *activity.LocationLng,
			Category: activity.Category,
			DayID:    activity.DayID,
		})
	}

	ctx.JSON(http.StatusOK, TripSummaryResponse{
		Trip:              tripResponse(trip),
		DayCount:          dayCount,
		Budget:            budget,
		CategoryBreakdown: breakdown,
		UpcomingTasks:     upcoming,
		MapPoints:         points,
	})
}
