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

type CreateNoteRequest struct {
	TripID  uint   `json:"trip_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type UpdateNoteRequest struct {
	Content *string `json:"content"`
}

func CreateNote(ctx *gin.Context) {
	var req CreateNoteRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if _, ok := requireTripRole(ctx, req.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	note := models.TripNote{
		TripID:  req.TripID,
		Content: req.Content,
	}

	if err := db.DB.Create(&note).Error; err != nil {
		log.Printf("Failed to create note: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
		return
	}

	BroadcastTripRefresh(req.TripID)

	ctx.JSON(http.StatusCreated, note)
}

func UpdateNote(ctx *gin.Context) {
	noteID, err := utils.ParseUintParam(ctx, "note_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var note models.TripNote

	if err := db.DB.First(&note, noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve note"})
		}
		return
	}

	if _, ok := requireTripRole(ctx, note.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	var req UpdateNoteRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Content == nil || *req.Content == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	if err := db.DB.Model(&note).Update("content", *req.Content).Error; err != nil {
		log.Printf("Failed to update note %d: %v", noteID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update note"})
		return
	}

	BroadcastTripRefresh(note.TripID)

	ctx.JSON(http.StatusOK, note)
}

func DeleteNote(ctx *gin.Context) {
	noteID, err := utils.ParseUintParam(ctx, "note_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var note models.TripNote

	if err := db.DB.First(&note, noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve note"})
		}
		return
	}

	if _, ok := requireTripRole(ctx, note.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	if err := db.DB.Delete(&note).Error; err != nil {
		log.Printf("Failed to delete note %d: %v", noteID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
		return
	}

	BroadcastTripRefresh(note.TripID)

	ctx.Status(http.StatusNoContent)
}
