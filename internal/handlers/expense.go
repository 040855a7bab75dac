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

type CreateExpenseRequest struct {
	TripID      uint     `json:"trip_id" binding:"required"`
	Description string   `json:"description" binding:"required,min=2"`
	Amount      *float64 `json:"amount" binding:"required,gte=0"`
	Currency    string   `json:"currency"`
	Date        string   `json:"date" binding:"required"`
	Category    string   `json:"category"`
	PaidBy      string   `json:"paid_by"`
}

type UpdateExpenseRequest struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Currency    *string  `json:"currency"`
	Date        *string  `json:"date"`
	Category    *string  `json:"category"`
	PaidBy      *string  `json:"paid_by"`
}

func CreateExpense(ctx *gin.Context) {
	var req CreateExpenseRequest

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

	if req.Currency == "" {
		req.Currency = "USD"
	}

	if req.Category == "" {
		req.Category = models.ExpenseCategoryMisc
	}

	expense := models.Expense{
		TripID:      req.TripID,
		Description: req.Description,
		Amount:      *req.Amount,
		Currency:    req.Currency,
		Date:        date,
		Category:    req.Category,
		PaidBy:      req.PaidBy,
	}

	if err := db.DB.Create(&expense).Error; err != nil {
		log.Printf("Failed to create expense: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		return
	}

	BroadcastTripRefresh(req.TripID)

	ctx.JSON(http.StatusCreated, expense)
}

func UpdateExpense(ctx *gin.Context) {
	expenseID, err := utils.ParseUintParam(ctx, "expense_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var expense models.Expense

	if err := db.DB.First(&expense, expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve expense"})
		}
		return
	}

	if _, ok := requireTripRole(ctx, expense.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	var req UpdateExpenseRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Amount must not be negative"})
			return
		}
		updates["amount"] = *req.Amount
	}
	if req.Currency != nil {
		updates["currency"] = *req.Currency
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.PaidBy != nil {
		updates["paid_by"] = *req.PaidBy
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
			return
		}
		updates["date"] = date
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&expense).Updates(updates).Error; err != nil {
		log.Printf("Failed to update expense %d: %v", expenseID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		return
	}

	BroadcastTripRefresh(expense.TripID)

	ctx.JSON(http.StatusOK, expense)
}

func DeleteExpense(ctx *gin.Context) {
	expenseID, err := utils.ParseUintParam(ctx, "expense_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var expense models.Expense

	if err := db.DB.First(&expense, expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve expense"})
		}
		return
	}

	if _, ok := requireTripRole(ctx, expense.TripID, models.RoleOwner, models.RoleEditor); !ok {
		return
	}

	if err := db.DB.Delete(&expense).Error; err != nil {
		log.Printf("Failed to delete expense %d: %v", expenseID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}

	BroadcastTripRefresh(expense.TripID)

	ctx.Status(http.StatusNoContent)
}
