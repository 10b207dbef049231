package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/softdesk/issue-tracker-api/internal/config"
	"github.com/softdesk/issue-tracker-api/internal/database"
	"github.com/softdesk/issue-tracker-api/internal/handlers"
	"github.com/softdesk/issue-tracker-api/internal/middleware"
	"github.com/softdesk/issue-tracker-api/internal/repository"
	"github.com/softdesk/issue-tracker-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	contributorRepo := repository.NewContributorRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Initialize services
	tokenService := services.NewTokenService(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, tokenService)
	projectService := services.NewProjectService(projectRepo, contributorRepo)
	contributorService := services.NewContributorService(contributorRepo, userRepo)
	issueService := services.NewIssueService(issueRepo, contributorRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, issueRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	contributorHandler := handlers.NewContributorHandler(contributorService)
	issueHandler := handlers.NewIssueHandler(issueService)
	commentHandler := handlers.NewCommentHandler(commentService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Issue Tracker API is running",
		})
	})

	requireAuth := middleware.RequireAuth(tokenService)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:project_id", middleware.RequireProjectAccess(), projectHandler.GetProject)
			projects.PUT("/:project_id", middleware.RequireProjectAccess(), middleware.RequireProjectAuthor(), projectHandler.UpdateProject)
			projects.PATCH("/:project_id", handlers.PatchNotAllowed)
			projects.DELETE("/:project_id", middleware.RequireProjectAccess(), middleware.RequireProjectAuthor(), projectHandler.DeleteProject)

			// Contributors (nested under a project)
			projects.GET("/:project_id/contributors", middleware.RequireProjectAccess(), contributorHandler.ListContributors)
			projects.POST("/:project_id/contributors", middleware.RequireProjectAccess(), middleware.RequireProjectAuthor(), contributorHandler.InviteContributor)
			projects.GET("/:project_id/contributors/:contributor_id", middleware.RequireProjectAccess(), contributorHandler.GetContributor)
			projects.PUT("/:project_id/contributors/:contributor_id", middleware.RequireProjectAccess(), contributorHandler.UpdateContributor)
			projects.PATCH("/:project_id/contributors/:contributor_id", handlers.PatchNotAllowed)
			projects.DELETE("/:project_id/contributors/:contributor_id", middleware.RequireProjectAccess(), middleware.RequireProjectAuthor(), contributorHandler.RemoveContributor)

			// Issues (nested under a project)
			projects.GET("/:project_id/issues", middleware.RequireProjectAccess(), issueHandler.ListIssues)
			projects.POST("/:project_id/issues", middleware.RequireProjectAccess(), issueHandler.CreateIssue)
			projects.GET("/:project_id/issues/:issue_id", middleware.RequireProjectAccess(), issueHandler.GetIssue)
			projects.PUT("/:project_id/issues/:issue_id", middleware.RequireProjectAccess(), issueHandler.UpdateIssue)
			projects.PATCH("/:project_id/issues/:issue_id", handlers.PatchNotAllowed)
			projects.DELETE("/:project_id/issues/:issue_id", middleware.RequireProjectAccess(), issueHandler.DeleteIssue)

			// Comments (nested under an issue)
			projects.GET("/:project_id/issues/:issue_id/comments", middleware.RequireProjectAccess(), commentHandler.ListComments)
			projects.POST("/:project_id/issues/:issue_id/comments", middleware.RequireProjectAccess(), commentHandler.CreateComment)
			projects.GET("/:project_id/issues/:issue_id/comments/:comment_id", middleware.RequireProjectAccess(), commentHandler.GetComment)
			projects.PUT("/:project_id/issues/:issue_id/comments/:comment_id", middleware.RequireProjectAccess(), commentHandler.UpdateComment)
			projects.PATCH("/:project_id/issues/:issue_id/comments/:comment_id", handlers.PatchNotAllowed)
			projects.DELETE("/:project_id/issues/:issue_id/comments/:comment_id", middleware.RequireProjectAccess(), commentHandler.DeleteComment)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
