package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/claudiafierrez/whereisit/controllers"
)

func SetupUserRoutes(protected *gin.RouterGroup, userController *controllers.UserController) {
	users := protected.Group("/users")
	{
		users.GET("/search", userController.SearchUsers)
		users.GET("/top", userController.GetTopUsers)
		users.GET("/:userId/profile", userController.GetUserProfile)
	}
}
