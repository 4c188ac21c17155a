package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/claudiafierrez/whereisit/controllers"
)

func SetupPlaceRoutes(protected *gin.RouterGroup, placeController *controllers.PlaceController, trackingController *controllers.TrackingController) {
	places := protected.Group("/places")
	{
		places.GET("", placeController.GetPlaces)
		places.GET("/:placeId/spots", placeController.GetPlaceSpots)
		places.GET("/:placeId/spots/:spotId", placeController.GetSpotDetails)
		places.POST("/:placeId/spots/:spotId/checkin", placeController.CheckIn)
	}

	// Live proximity tracking stream.
	protected.GET("/spots/:placeId/:spotId/track", trackingController.TrackSpot)
}
