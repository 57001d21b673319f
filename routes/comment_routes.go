package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/quillhub/api-go/controllers"
)

func SetupCommentRoutes(protected *gin.RouterGroup, commentController *controllers.CommentController) {
	posts := protected.Group("/posts")
	{
		posts.POST("/:id/comments", commentController.CreateComment)
	}

	comments := protected.Group("/comments")
	{
		comments.PUT("/:id", commentController.UpdateComment)
		comments.DELETE("/:id", commentController.DeleteComment)
	}
}
