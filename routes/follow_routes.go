package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/claudiafierrez/whereisit/controllers"
)

func SetupFollowRoutes(protected *gin.RouterGroup, followController *controllers.FollowController) {
	users := protected.Group("/users")
	{
		users.GET("/:userId/follow", followController.GetFollowStatus)
		users.POST("/:userId/follow", followController.FollowUser)
		users.DELETE("/:userId/follow", followController.UnfollowUser)
		users.DELETE("/:userId/follow-request", followController.CancelFollowRequest)
	}

	follows := protected.Group("/follows")
	{
		follows.POST("/:followId/accept", followController.AcceptFollow)
		follows.POST("/:followId/reject", followController.RejectFollow)
	}

	protected.GET("/follow-requests", followController.GetPendingRequests)
}
