package handlers

import (
	"net/http"

	"project-tracker/internal/database"
	"project-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

// notificationFeedLimit caps the listing; older rows stay in the store
// until explicitly cleared.
const notificationFeedLimit = 100

func ListNotifications(c *gin.Context) {
	var notifications []models.Notification
	if err := database.DB.
		Order("created_at desc").
		Limit(notificationFeedLimit).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func CreateNotification(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	emitter.Post(c.Request.Context(), req.Message)
	c.JSON(http.StatusCreated, gin.H{"message": "notification added"})
}

func DeleteNotification(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := database.DB.Delete(&models.Notification{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
}

func ClearNotifications(c *gin.Context) {
	if err := database.DB.Exec("DELETE FROM notifications").Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all notifications cleared"})
}
