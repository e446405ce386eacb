package handlers

import (
	"errors"
	"net/http"
	"strings"

	"project-tracker/internal/audit"
	"project-tracker/internal/database"
	"project-tracker/internal/models"
	"project-tracker/internal/shares"

	"github.com/gin-gonic/gin"
)

func ListStakeholders(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}

	var stakeholders []models.Stakeholder
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&stakeholders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stakeholders"})
		return
	}
	c.JSON(http.StatusOK, stakeholders)
}

func GetStakeholder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var stakeholder models.Stakeholder
	if err := database.DB.Preload("Project").First(&stakeholder, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stakeholder not found"})
		return
	}
	c.JSON(http.StatusOK, stakeholder)
}

type stakeholderRequest struct {
	Name             string                 `json:"name"`
	Email            string                 `json:"email"`
	Role             models.StakeholderRole `json:"role"`
	Share            int                    `json:"share"`
	Responsibilities string                 `json:"responsibilities"`
	IsActive         *bool                  `json:"isActive"`
	ProjectID        uint                   `json:"projectId"`
	UserID           uint                   `json:"userId"`
}

func (r *stakeholderRequest) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	switch {
	case r.Name == "":
		return "stakeholder name is required"
	case !models.ValidStakeholderRole(r.Role):
		return "role must be one of Developer, Client, Investor, Marketer"
	case r.Share < 0 || r.Share > 100:
		return "share must be between 0 and 100"
	}
	return ""
}

// checkImmutable rejects an update body that tries to move the
// stakeholder to another project or owner. Omitting the fields (zero)
// keeps the current values.
func (r *stakeholderRequest) checkImmutable(current *models.Stakeholder) string {
	if r.ProjectID != 0 && r.ProjectID != current.ProjectID {
		return "stakeholder cannot be moved to another project"
	}
	if r.UserID != 0 && r.UserID != current.UserID {
		return "stakeholder owner cannot be changed"
	}
	return ""
}

func CreateStakeholder(c *gin.Context) {
	var req stakeholderRequest
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

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	stakeholder := models.Stakeholder{
		Name:             req.Name,
		Email:            req.Email,
		Role:             req.Role,
		Share:            req.Share,
		Responsibilities: req.Responsibilities,
		IsActive:         active,
		ProjectID:        project.ID,
		UserID:           req.UserID,
	}

	// the ceiling check and the insert run in one store transaction
	if err := store.CreateStakeholder(c.Request.Context(), &stakeholder); err != nil {
		if errors.Is(err, shares.ErrShareExceeded) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create stakeholder"})
		return
	}

	recorder.Record(c.Request.Context(), "stakeholder", stakeholder.ID, models.OpCreate, currentActorID(c), audit.Created(stakeholder))
	emitter.Emit(c.Request.Context(), `Stakeholder added to project "{name}"`, project.Name)

	c.JSON(http.StatusCreated, stakeholder)
}

func UpdateStakeholder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var stakeholder models.Stakeholder
	if err := database.DB.First(&stakeholder, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stakeholder not found"})
		return
	}

	var req stakeholderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if msg := req.checkImmutable(&stakeholder); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	before := stakeholder
	stakeholder.Name = req.Name
	stakeholder.Email = req.Email
	stakeholder.Role = req.Role
	stakeholder.Share = req.Share
	stakeholder.Responsibilities = req.Responsibilities
	if req.IsActive != nil {
		stakeholder.IsActive = *req.IsActive
	}

	if err := store.UpdateStakeholder(c.Request.Context(), &stakeholder); err != nil {
		if errors.Is(err, shares.ErrShareExceeded) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update stakeholder"})
		return
	}

	recorder.Record(c.Request.Context(), "stakeholder", stakeholder.ID, models.OpUpdate, currentActorID(c), audit.Updated(before, stakeholder))

	c.JSON(http.StatusOK, stakeholder)
}

func DeleteStakeholder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var stakeholder models.Stakeholder
	if err := database.DB.First(&stakeholder, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stakeholder not found"})
		return
	}

	if err := database.DB.Delete(&stakeholder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete stakeholder"})
		return
	}

	recorder.Record(c.Request.Context(), "stakeholder", stakeholder.ID, models.OpDelete, currentActorID(c), audit.Deleted(stakeholder))

	c.JSON(http.StatusOK, gin.H{"message": "stakeholder deleted"})
}

func StakeholderStats(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}

	counts, err := stats.StakeholderStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, counts)
}
