package handlers

import (
	"net/http"
	"strings"

	"project-tracker/internal/audit"
	"project-tracker/internal/database"
	"project-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

func ListProjects(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}

	var projects []models.Project
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch projects"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

// ProjectNames returns only id and name, for pickers.
func ProjectNames(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}

	type projectName struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	var names []projectName
	if err := database.DB.Model(&models.Project{}).
		Where("user_id = ?", userID).
		Select("id, name").
		Scan(&names).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch projects"})
		return
	}
	c.JSON(http.StatusOK, names)
}

type projectRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	Completion  int     `json:"completion"`
	UserID      uint    `json:"userId"`
}

func (r *projectRequest) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	switch {
	case r.Name == "":
		return "project name is required"
	case r.Value < 0:
		return "project value cannot be negative"
	case r.Completion < 0 || r.Completion > 100:
		return "completion must be between 0 and 100"
	}
	return ""
}

func CreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		Value:       req.Value,
		Completion:  req.Completion,
		UserID:      req.UserID,
	}
	if err := database.DB.Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	recorder.Record(c.Request.Context(), "project", project.ID, models.OpCreate, currentActorID(c), audit.Created(project))
	emitter.Emit(c.Request.Context(), `Project "{name}" created successfully.`, project.Name)

	c.JSON(http.StatusCreated, gin.H{"message": "project created", "project": project})
}

func UpdateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var project models.Project
	if err := database.DB.First(&project, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	before := project
	project.Name = req.Name
	project.Description = req.Description
	project.Value = req.Value
	project.Completion = req.Completion

	if err := database.DB.Save(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update project"})
		return
	}

	recorder.Record(c.Request.Context(), "project", project.ID, models.OpUpdate, currentActorID(c), audit.Updated(before, project))

	c.JSON(http.StatusOK, project)
}

func DeleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var project models.Project
	if err := database.DB.First(&project, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	if err := database.DB.Delete(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
		return
	}

	recorder.Record(c.Request.Context(), "project", project.ID, models.OpDelete, currentActorID(c), audit.Deleted(project))

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

func ProjectsWithStakeholders(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}

	var projects []models.Project
	if err := database.DB.
		Preload("Stakeholders").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch projects with stakeholders"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

// ProjectsWithExpenses lists the user's projects with the summed expense
// amount per project.
func ProjectsWithExpenses(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}

	type projectExpense struct {
		ID               uint    `json:"id"`
		Name             string  `json:"name"`
		Value            float64 `json:"value"`
		Completion       int     `json:"completion"`
		TotalExpenditure float64 `json:"totalExpenditure"`
	}
	var rows []projectExpense
	if err := database.DB.Model(&models.Project{}).
		Select("projects.id, projects.name, projects.value, projects.completion, COALESCE(SUM(t.amount), 0) AS total_expenditure").
		Joins("LEFT JOIN transactions t ON t.project_id = projects.id AND t.type = ? AND t.deleted_at IS NULL", models.TypeExpense).
		Where("projects.user_id = ?", userID).
		Group("projects.id").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch projects with expenses"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func ProfitDistribution(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}

	reports, err := engine.DistributeProfits(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute profit distribution"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

// SearchProjects matches the query as a whole word in project names,
// case-insensitively.
func SearchProjects(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	var projects []models.Project
	if err := database.DB.
		Preload("Stakeholders").
		Where(`name ~* ('\m' || ? || '\M')`, query).
		Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

func AvailableShare(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var project models.Project
	if err := database.DB.First(&project, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	avail, err := validator.AvailableShare(c.Request.Context(), project.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute available share"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"availableShare": avail})
}
