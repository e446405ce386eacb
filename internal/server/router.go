package server

import (
	"net/http"

	"project-tracker/internal/config"
	"project-tracker/internal/database"
	"project-tracker/internal/handlers"
	"project-tracker/internal/middleware"
	"project-tracker/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("tracker_session", store))

	r.Use(middleware.InjectUser())

	handlers.Init(database.NewStore(database.DB))

	api := r.Group("/api")

	// AUTH
	users := api.Group("/users")
	users.POST("/register", handlers.Register)
	users.POST("/login", handlers.Login)
	users.GET("/logout", handlers.Logout)

	admin := users.Group("/")
	admin.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin))
	admin.GET("/all", handlers.ListUsers)
	admin.GET("/unapproved", handlers.ListUnapprovedUsers)
	admin.PUT("/approve/:id", handlers.ApproveUser)

	auth := api.Group("/")
	auth.Use(middleware.RequireAuth())

	// PROJECTS
	projects := auth.Group("/projects")
	projects.GET("/getAll", handlers.ListProjects)
	projects.GET("/getName", handlers.ProjectNames)
	projects.POST("/create", handlers.CreateProject)
	projects.PUT("/update/:id", handlers.UpdateProject)
	projects.DELETE("/delete/:id", handlers.DeleteProject)
	projects.GET("/with-stakeholders", handlers.ProjectsWithStakeholders)
	projects.GET("/expenses", handlers.ProjectsWithExpenses)
	projects.GET("/profit-distribution", handlers.ProfitDistribution)
	projects.GET("/search", handlers.SearchProjects)
	projects.GET("/:id/available-share", handlers.AvailableShare)

	// STAKEHOLDERS
	stakeholders := auth.Group("/stakeholders")
	stakeholders.GET("/stats", handlers.StakeholderStats)
	stakeholders.GET("", handlers.ListStakeholders)
	stakeholders.GET("/:id", handlers.GetStakeholder)
	stakeholders.POST("", handlers.CreateStakeholder)
	stakeholders.PUT("/:id", handlers.UpdateStakeholder)
	stakeholders.DELETE("/:id", handlers.DeleteStakeholder)

	// FINANCE
	finance := auth.Group("/finance")
	finance.GET("", handlers.ListTransactions)
	finance.GET("/:id", handlers.GetTransaction)
	finance.POST("", handlers.CreateTransaction)
	finance.PUT("/:id", handlers.UpdateTransaction)
	finance.DELETE("/:id", handlers.DeleteTransaction)

	// NOTIFICATIONS
	notifications := auth.Group("/notifications")
	notifications.GET("", handlers.ListNotifications)
	notifications.POST("", handlers.CreateNotification)
	notifications.DELETE("/:id", handlers.DeleteNotification)
	notifications.DELETE("", handlers.ClearNotifications)

	// CHANGE HISTORY
	auth.GET("/history",
		middleware.RequireRole(models.RoleAdmin),
		handlers.ListHistory,
	)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
