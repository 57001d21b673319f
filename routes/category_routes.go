package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/quillhub/api-go/controllers"
)

func SetupCategoryRoutes(protected *gin.RouterGroup, categoryController *controllers.CategoryController) {
	categories := protected.Group("/categories")
	{
		categories.POST("", categoryController.CreateCategory)
		categories.GET("", categoryController.GetAllCategories)
		categories.GET("/:id", categoryController.GetCategory)
		categories.PUT("/:id", categoryController.UpdateCategory)
		categories.DELETE("/:id", categoryController.DeleteCategory)
	}
}
