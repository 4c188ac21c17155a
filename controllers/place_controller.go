package controllers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/claudiafierrez/whereisit/models"
	"github.com/claudiafierrez/whereisit/services"
	"github.com/claudiafierrez/whereisit/utils"
	"gorm.io/gorm"
)

type PlaceController struct {
	DB                *gorm.DB
	CompletionService *services.CompletionService
}

func NewPlaceController(db *gorm.DB, completionService *services.CompletionService) *PlaceController {
	return &PlaceController{DB: db, CompletionService: completionService}
}

func (pc *PlaceController) GetPlaces(c *gin.Context) {
	var places []models.Place
	if err := pc.DB.Order("name").Find(&places).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching places"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "places": places})
}

func (pc *PlaceController) GetPlaceSpots(c *gin.Context) {
	placeID := c.Param("placeId")

	var place models.Place
	if err := pc.DB.First(&place, "id = ?", placeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Place not found"})
		return
	}

	var spots []models.Spot
	if err := pc.DB.Where("place_id = ?", placeID).Order("name").Find(&spots).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching spots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"place":   place,
		"spots":   spots,
	})
}

// GetSpotDetails godoc
// @Summary Spot detail with completion state and a Street View image URL
// @Tags places
// @Produce json
// @Param placeId path string true "Place ID"
// @Param spotId path string true "Spot ID"
// @Success 200 {object} map[string]interface{}
// @Router /places/{placeId}/spots/{spotId} [get]
func (pc *PlaceController) GetSpotDetails(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	placeID := c.Param("placeId")
	spotID := c.Param("spotId")

	var spot models.Spot
	err := pc.DB.Where("place_id = ? AND id = ?", placeID, spotID).Take(&spot).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Spot not found"})
		return
	}

	completed, err := pc.CompletionService.IsSpotCompleted(c.Request.Context(), user.UserID, placeID, spotID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching completion state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"spot":      spot,
		"completed": completed,
		"streetViewUrl": utils.StreetViewURL(
			spot.Latitude, spot.Longitude,
			spot.StreetViewHeading, spot.StreetViewPitch,
			os.Getenv("MAPS_API_KEY"),
		),
	})
}

// CheckIn godoc
// @Summary Complete a spot from the device's current position
// @Description Awards the spot's difficulty exactly once when the device is within 20 meters
// @Tags places
// @Accept json
// @Produce json
// @Param placeId path string true "Place ID"
// @Param spotId path string true "Spot ID"
// @Success 200 {object} map[string]interface{}
// @Router /places/{placeId}/spots/{spotId}/checkin [post]
func (pc *PlaceController) CheckIn(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	placeID := c.Param("placeId")
	spotID := c.Param("spotId")

	var input struct {
		Latitude  *float64 `json:"latitude" binding:"required"`
		Longitude *float64 `json:"longitude" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var spot models.Spot
	err := pc.DB.Where("place_id = ? AND id = ?", placeID, spotID).Take(&spot).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Spot not found"})
		return
	}

	distance := services.DistanceMeters(*input.Latitude, *input.Longitude, spot.Latitude, spot.Longitude)
	if distance > services.CheckInRadiusMeters {
		c.JSON(http.StatusOK, gin.H{
			"success":        true,
			"completed":      false,
			"withinRange":    false,
			"distanceMeters": distance,
		})
		return
	}

	result, err := pc.CompletionService.MarkSpotCompleted(c.Request.Context(), user.UserID, placeID, spotID, spot.Difficulty)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete spot"})
		return
	}

	if result == services.AlreadyCompleted {
		c.JSON(http.StatusConflict, gin.H{
			"success":   false,
			"error":     "Spot already completed",
			"completed": false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"completed":      true,
		"withinRange":    true,
		"distanceMeters": distance,
		"pointsAwarded":  spot.Difficulty,
	})
}
