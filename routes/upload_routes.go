package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/quillhub/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	upload := protected.Group("/upload")
	{
		upload.POST("/presigned-url", uploadController.GetPresignedURL)
		upload.DELETE("/file", uploadController.DeleteFile)
	}
}
