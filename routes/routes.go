package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quillhub/api-go/controllers"
	"github.com/quillhub/api-go/middleware"
	"github.com/quillhub/api-go/services"
	"github.com/quillhub/api-go/store"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, stats store.StatsStore) {
	// Initialize services
	engagementService := services.NewEngagementService(db, stats)
	relationshipService := services.NewRelationshipService(db, stats)
	reactionService := services.NewReactionService(db)
	postService := services.NewPostService(db, engagementService)
	userService := services.NewUserService(db, stats)

	// Initialize controllers
	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(userService, relationshipService, engagementService)
	postController := controllers.NewPostController(postService, reactionService)
	interactionController := controllers.NewInteractionController(relationshipService, reactionService)
	commentController := controllers.NewCommentController(db)
	categoryController := controllers.NewCategoryController(db)
	uploadController := controllers.NewUploadController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		SetupUserRoutes(protected, userController)
		SetupPostRoutes(protected, postController)
		SetupInteractionRoutes(protected, interactionController)
		SetupCommentRoutes(protected, commentController)
		SetupCategoryRoutes(protected, categoryController)
		SetupUploadRoutes(protected, uploadController)
	}

	// Admin routes
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminRequired())
	{
		admin.POST("/users/:userId/block", userController.AdminBlockUser)
		admin.DELETE("/users/:userId/block", userController.AdminUnblockUser)
	}
}
