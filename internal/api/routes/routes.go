package routes

import (
	"taskforge-backend/internal/api/handlers"
	"taskforge-backend/internal/api/middleware"
	"taskforge-backend/internal/auth"
	"taskforge-backend/internal/config"
	"taskforge-backend/internal/repository"
	"taskforge-backend/internal/service"
	"taskforge-backend/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config, wf *workflow.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Initialize services
	authorizer := service.NewAuthorizer(membershipRepo)
	teamService := service.NewTeamService(teamRepo, membershipRepo, userRepo, authorizer, validator)
	projectService := service.NewProjectService(projectRepo, teamRepo, authorizer, validator)
	taskService := service.NewTaskService(taskRepo, projectRepo, commentRepo, userRepo, authorizer, wf, validator)
	authService := auth.NewAuthService(userRepo, validator, cfg.JWTSecret, cfg.JWTTokenTTL)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	teamHandler := handlers.NewTeamHandler(teamService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	authHandler := auth.NewAuthHandler(authService)
	authMiddleware := auth.NewAuthMiddleware(authService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth routes
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// API routes - all endpoints require authentication
	api := router.Group("/api")
	api.Use(authMiddleware.RequireAuth())
	{
		// Team routes. The static paths are registered before the
		// parameterized ones so gin does not capture them as :teamId.
		teams := api.Group("/teams")
		{
			teams.GET("", teamHandler.ListTeams)
			teams.POST("", teamHandler.CreateTeam)
			teams.GET("/available-to-join", teamHandler.ListAvailableTeams)
			teams.POST("/join-by-code", teamHandler.JoinByCode)
			teams.GET("/:teamId/members", teamHandler.GetTeamMembers)
			teams.POST("/:teamId/members", teamHandler.AddMember)
		}

		// Project routes
		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects) // Optional teamId parameter
			projects.POST("", projectHandler.CreateProject)
		}

		// Task routes
		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks) // Requires projectId parameter
			tasks.POST("", taskHandler.CreateTask)
			tasks.PATCH("/:taskId", taskHandler.UpdateTask)
			tasks.DELETE("/:taskId", taskHandler.DeleteTask)
			tasks.GET("/:taskId/comments", taskHandler.ListComments)
			tasks.POST("/:taskId/comments", taskHandler.AddComment)
		}
	}

	// Catch-all route for undefined endpoints
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":      "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("request_id"),
		})
	})

	return router
}

// SetupHealthRoutes sets up only health check routes (useful for testing)
func SetupHealthRoutes(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	return router
}
