package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/quillhub/api-go/controllers"
)

func SetupUserRoutes(protected *gin.RouterGroup, userController *controllers.UserController) {
	users := protected.Group("/users")
	{
		users.GET("", userController.GetAllUsers)
		users.GET("/:userId/profile", userController.GetUserProfile)
		users.GET("/:userId/followers", userController.GetUserFollowers)
		users.GET("/:userId/following", userController.GetUserFollowing)
	}

	// Caller-scoped endpoints
	me := protected.Group("/me")
	{
		me.PUT("/profile", userController.UpdateProfile)
		me.PUT("/password", userController.UpdatePassword)
		me.DELETE("", userController.DeleteAccount)
		me.GET("/viewers", userController.GetProfileViewers)
		me.GET("/blocked", userController.GetBlockedUsers)
	}
}
