package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripeasy-dev/tripeasy/db"
	"github.com/tripeasy-dev/tripeasy/internal/models"
	"github.com/tripeasy-dev/tripeasy/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateTripRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Destination string `json:"destination" binding:"required,min=2"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Description string `json:"description"`
	CoverImage  string `json:"cover_image"`
	TravelStyle string `json:"travel_style"`
	Currency    string `json:"currency"`
}

type UpdateTripRequest struct {
	Name        *string `json:"name"`
	Destination *string `json:"destination"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description"`
	CoverImage  *string `json:"cover_image"`
	TravelStyle *string `json:"travel_style"`
	Currency    *string `json:"currency"`
}

type TripResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	Description string    `json:"description"`
	CoverImage  string    `json:"cover_image"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TravelStyle string    `json:"travel_style"`
	Currency    string    `json:"currency"`
	CreatedByID uint      `json:"created_by_id"`
	Role        string    `json:"role,omitempty"`
}

type TripOverview struct {
	TripResponse

	TotalActivities int     `json:"total_activities"`
	PackedCount     int64   `json:"packed_count"`
	TaskCompletion  int     `json:"task_completion"`
	TotalExpense    float64 `json:"total_expense"`
}

func tripResponse(trip models.Trip) TripResponse {
	return TripResponse{
		ID:          trip.ID,
		Name:        trip.Name,
		Destination: trip.Destination,
		Description: trip.Description,
		CoverImage:  trip.CoverImage,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		TravelStyle: trip.TravelStyle,
		Currency:    trip.Currency,
		CreatedByID: trip.CreatedByID,
	}
}

func CreateTrip(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateTripRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	startDate, err := parseDate(req.StartDate)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date"})
		return
	}

	endDate, err := parseDate(req.EndDate)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date"})
		return
	}

	if endDate.Before(startDate) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "end_date must not be before start_date"})
		return
	}

	if req.TravelStyle == "" {
		req.TravelStyle = models.TravelStyleAdventure
	}

	if req.Currency == "" {
		req.Currency = "USD"
	}

	trip := models.Trip{
		Name:        req.Name,
		Destination: req.Destination,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		StartDate:   startDate,
		EndDate:     endDate,
		TravelStyle: req.TravelStyle,
		Currency:    req.Currency,
		CreatedByID: userID,
	}

	// The creator becomes the first OWNER and one day is seeded per calendar
	// day of the range, all in one transaction.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&trip).Error; err != nil {
			return err
		}

		member := models.TripMember{
			UserID: userID,
			TripID: trip.ID,
			Role:   models.RoleOwner,
		}

		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		dayCount := int(endDate.Sub(startDate).Hours()/24) + 1
		if dayCount < 1 {
			dayCount = 1
		}

		for i := 0; i < dayCount; i++ {
			day := models.TripDay{
				TripID: trip.ID,
				Date:   datatypes.Date(startDate.AddDate(0, 0, i)),
			}
			if err := tx.Create(&day).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		log.Printf("Failed to create trip: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip"})
		return
	}

	ctx.JSON(http.StatusCreated, tripResponse(trip))
}

func ListTrips(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var memberships []models.TripMember

	if err := db.DB.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trips"})
		return
	}

	roleByTrip := make(map[uint]string, len(memberships))
	tripIDs := make([]uint, 0, len(memberships))

	for _, membership := range memberships {
		roleByTrip[membership.TripID] = membership.Role
		tripIDs = append(tripIDs, membership.TripID)
	}

	var trips []models.Trip

	if len(tripIDs) > 0 {
		if err := db.DB.Where("id IN ?", tripIDs).Order("start_date ASC").Find(&trips).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trips"})
			return
		}
	}

	response := make([]TripOverview, 0, len(trips))

	for _, trip := range trips {
		overview, err := buildTripOverview(trip)
		if err != nil {
			log.Printf("Failed to build overview for trip %d: %v", trip.ID, err)
			continue
		}
		overview.Role = roleByTrip[trip.ID]
		response = append(response, overview)
	}

	ctx.JSON(http.StatusOK, response)
}

func buildTripOverview(trip models.Trip) (TripOverview, error) {
	var totalActivities int64

	if err := db.DB.Model(&models.Activity{}).
		Joins("JOIN trip_days ON trip_days.id = activities.day_id").
		Where("trip_days.trip_id = ? AND trip_days.deleted_at IS NULL", trip.ID).
		Count(&totalActivities).Error; err != nil {
		return TripOverview{}, err
	}

	var packedCount int64

	if err := db.DB.Model(&models.PackingItem{}).
		Where("trip_id = ? AND is_packed = ?", trip.ID, true).
		Count(&packedCount).Error; err != nil {
		return TripOverview{}, err
	}

	var totalTasks, completedTasks int64

	if err := db.DB.Model(&models.TripTask{}).Where("trip_id = ?", trip.ID).Count(&totalTasks).Error; err != nil {
		return TripOverview{}, err
	}

	if err := db.DB.Model(&models.TripTask{}).
		Where("trip_id = ? AND is_complete = ?", trip.ID, true).
		Count(&completedTasks).Error; err != nil {
		return TripOverview{}, err
	}

	taskCompletion := 0
	if totalTasks > 0 {
		taskCompletion = int(float64(completedTasks) / float64(totalTasks) * 100)
	}

	totalExpense, err := sumTripExpenses(trip.ID)
	if err != nil {
		return TripOverview{}, err
	}

	return TripOverview{
		TripResponse:    tripResponse(trip),
		TotalActivities: int(totalActivities),
		PackedCount:     packedCount,
		TaskCompletion:  taskCompletion,
		TotalExpense:    totalExpense,
	}, nil
}

func GetTrip(ctx *gin.Context) {
	tripID, err := utils.ParseUintParam(ctx, "trip_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireTripRole(ctx, tripID); !ok {
		return
	}

	var trip models.Trip

	err = db.DB.
		Preload("Days", func(tx *gorm.DB) *gorm.DB { return tx.Order("trip_days.date ASC") }).
		Preload("Days.Activities").
		Preload("Members").
		Preload("Lodgings", func(tx *gorm.DB) *gorm.DB { return tx.Order("lodgings.check_in ASC") }).
		Preload("Segments", func(tx *gorm.DB) *gorm.DB { return tx.Order("transport_segments.departure_time ASC") }).
		Preload("Packing", func(tx *gorm.DB) *gorm.DB { return tx.Order("packing_items.category ASC") }).
		Preload("Tasks", func(tx *gorm.DB) *gorm.DB { return tx.Order("trip_tasks.due_date ASC") }).
		Preload("Expenses", func(tx *gorm.DB) *gorm.DB { return tx.Order("expenses.date DESC") }).
		Preload("Notes", func(tx *gorm.DB) *gorm.DB { return tx.Order("trip_notes.created_at DESC") }).
		Preload("Companions", func(tx *gorm.DB) *gorm.DB { return tx.Order("travel_companions.name ASC") }).
		First(&trip, tripID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		} else {
			log.Printf("Failed to retrieve trip %d: %v", tripID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trip"})
		}
		return
	}

	ctx.JSON(http.StatusOK, trip)
}

func UpdateTrip(ctx *gin.Context) {
	tripID, err := utils.ParseUintParam(ctx, "trip_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireTripRole(ctx, tripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	var req UpdateTripRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
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

	// nil pointer means "do not touch", a present empty value clears.
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Destination != nil {
		updates["destination"] = *req.Destination
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CoverImage != nil {
		updates["cover_image"] = *req.CoverImage
	}
	if req.TravelStyle != nil {
		updates["travel_style"] = *req.TravelStyle
	}
	if req.Currency != nil {
		updates["currency"] = *req.Currency
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date"})
			return
		}
		updates["start_date"] = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date"})
			return
		}
		updates["end_date"] = endDate
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&trip).Updates(updates).Error; err != nil {
		log.Printf("Failed to update trip %d: %v", tripID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trip"})
		return
	}

	BroadcastTripRefresh(trip.ID)

	ctx.JSON(http.StatusOK, tripResponse(trip))
}

func DeleteTrip(ctx *gin.Context) {
	tripID, err := utils.ParseUintParam(ctx, "trip_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Deleting a whole workspace is reserved for owners.
	if _, ok := requireTripRole(ctx, tripID, models.RoleOwner); !ok {
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

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("day_id IN (?)", tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.TripDay{}).Select("id").Where("trip_id = ?", tripID),
		).Delete(&models.Activity{}).Error; err != nil {
			return err
		}

		children := []interface{}{
			&models.TripDay{},
			&models.Lodging{},
			&models.TransportSegment{},
			&models.PackingItem{},
			&models.TripTask{},
			&models.Expense{},
			&models.TripNote{},
			&models.TravelCompanion{},
			&models.TripMember{},
			&models.TripInvite{},
		}

		for _, child := range children {
			if err := tx.Where("trip_id = ?", tripID).Delete(child).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&trip).Error
	})

	if err != nil {
		log.Printf("Failed to delete trip %d: %v", tripID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func sumTripExpenses(tripID uint) (float64, error) {
	var total sql.NullFloat64

	err := db.DB.Model(&models.Expense{}).
		Select("SUM(amount)").
		Where("trip_id = ?", tripID).
		Scan(&total).Error

	if err != nil {
		return 0, err
	}

	if !total.Valid {
		return 0, nil
	}

	return total.Float64, nil
}
