package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/claudiafierrez/whereisit/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("/avatar", uploadController.GetAvatarUploadURL)
		uploads.POST("/avatar/confirm", uploadController.ConfirmAvatarUpload)
	}
}
