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

type CreatePackingItemRequest struct {
	TripID   uint   `json:"trip_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	IsPacked bool   `json:"is_packed"`
}

type UpdatePackingItemRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Quantity *int    `json:"quantity"`
	IsPacked *bool   `json:"is_packed"`
}

func CreatePackingItem(ctx *gin.Context) {
	var req CreatePackingItemRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if _, ok := requireTripRole(ctx, req.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	if req.Category == "" {
		req.Category = "General"
	}

	if req.Quantity < 1 {
		req.Quantity = 1
	}

	item := models.PackingItem{
		TripID:   req.TripID,
		Name:     req.Name,
		Category: req.Category,
		Quantity: req.Quantity,
		IsPacked: req.IsPacked,
	}

	if err := db.DB.Create(&item).Error; err != nil {
		log.Printf("Failed to create packing item: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create packing item"})
		return
	}

	BroadcastTripRefresh(req.TripID)

	ctx.JSON(http.StatusCreated, item)
}

func UpdatePackingItem(ctx *gin.Context) {
	itemID, err := utils.ParseUintParam(ctx, "item_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.PackingItem

	if err := db.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Packing item not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve packing item"})
		}
		return
	}

	if _, ok := requireTripRole(ctx, item.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	var req UpdatePackingItemRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.IsPacked != nil {
		updates["is_packed"] = *req.IsPacked
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&item).Updates(updates).Error; err != nil {
		log.Printf("Failed to update packing item %d: %v", itemID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update packing item"})
		return
	}

	BroadcastTripRefresh(item.TripID)

	ctx.JSON(http.StatusOK, item)
}

func DeletePackingItem(ctx *gin.Context) {
	itemID, err := utils.ParseUintParam(ctx, "item_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.PackingItem

	if err := db.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Packing item not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve packing item"})
		}
		return
	}

	if _, ok := requireTripRole(ctx, item.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	if err := db.DB.Delete(&item).Error; err != nil {
		log.Printf("Failed to delete packing item %d: %v", itemID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete packing item"})
		return
	}

	BroadcastTripRefresh(item.TripID)

	ctx.Status(http.StatusNoContent)
}
