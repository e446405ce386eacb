package handlers

import (
	"net/http"

	"project-tracker/internal/database"
	"project-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

// ListHistory returns the most recent change log entries, newest first.
// Optional entity and operation query parameters narrow the listing.
func ListHistory(c *gin.Context) {
	dbq := database.DB.Order("created_at desc").Limit(200)

	if entity := c.Query("entity"); entity != "" {
		dbq = dbq.Where("entity = ?", entity)
	}
	if op := c.Query("operation"); op != "" {
		dbq = dbq.Where("operation = ?", op)
	}

	var logs []models.ChangeLog
	if err := dbq.Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}
	c.JSON(http.StatusOK, logs)
}
