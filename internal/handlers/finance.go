package handlers

import (
	"net/http"
	"time"

	"project-tracker/internal/audit"
	"project-tracker/internal/database"
	"project-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

func ListTransactions(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}

	var transactions []models.Transaction
	if err := database.DB.
		Preload("Project").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch transactions"})
		return
	}
	c.JSON(http.StatusOK, transactions)
}

func GetTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var transaction models.Transaction
	if err := database.DB.Preload("Project").First(&transaction, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}
	c.JSON(http.StatusOK, transaction)
}

type transactionRequest struct {
	Amount      float64                `json:"amount"`
	Date        time.Time              `json:"date"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Type        models.TransactionType `json:"type"`
	ProjectID   uint                   `json:"projectId"`
	UserID      uint                   `json:"userId"`
}

func (r *transactionRequest) validate() string {
	if r.Type == "" {
		r.Type = models.TypeExpense
	}
	if r.Type != models.TypeExpense {
		return `type must be "expense"`
	}
	return ""
}

func CreateTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if req.ProjectID == 0 || req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projectId and userId are required"})
		return
	}

	var project models.Project
	if err := database.DB.First(&project, req.ProjectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	transaction := models.Transaction{
		Amount:      req.Amount,
		Date:        req.Date,
		Category:    req.Category,
		Description: req.Description,
		Type:        req.Type,
		ProjectID:   project.ID,
		UserID:      req.UserID,
	}
	if err := database.DB.Create(&transaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create transaction"})
		return
	}

	recorder.Record(c.Request.Context(), "transaction", transaction.ID, models.OpCreate, currentActorID(c), audit.Created(transaction))

	c.JSON(http.StatusCreated, transaction)
}

func UpdateTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var transaction models.Transaction
	if err := database.DB.First(&transaction, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}

	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	before := transaction
	transaction.Amount = req.Amount
	transaction.Date = req.Date
	transaction.Category = req.Category
	transaction.Description = req.Description
	transaction.Type = req.Type

	if err := database.DB.Save(&transaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update transaction"})
		return
	}

	recorder.Record(c.Request.Context(), "transaction", transaction.ID, models.OpUpdate, currentActorID(c), audit.Updated(before, transaction))

	c.JSON(http.StatusOK, transaction)
}

func DeleteTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var transaction models.Transaction
	if err := database.DB.First(&transaction, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}

	if err := database.DB.Delete(&transaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete transaction"})
		return
	}

	recorder.Record(c.Request.Context(), "transaction", transaction.ID, models.OpDelete, currentActorID(c), audit.Deleted(transaction))

	c.JSON(http.StatusOK, gin.H{"message": "transaction deleted"})
}
