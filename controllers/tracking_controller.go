package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/claudiafierrez/whereisit/models"
	"github.com/claudiafierrez/whereisit/services"
	"github.com/claudiafierrez/whereisit/utils"
	"gorm.io/gorm"
)

// TrackingController streams live proximity feedback while a user walks
// towards a spot. The client sends location pings; each reply carries the
// remaining distance, and the first in-range ping completes the spot and
// closes the stream. The subscription ends on every exit path: client
// disconnect, read error, or completion.
type TrackingController struct {
	DB                *gorm.DB
	CompletionService *services.CompletionService
	upgrader          websocket.Upgrader
}

type locationPing struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type trackingUpdate struct {
	DistanceMeters float64 `json:"distanceMeters"`
	WithinRange    bool    `json:"withinRange"`
	Completed      bool    `json:"completed"`
	PointsAwarded  int     `json:"pointsAwarded,omitempty"`
	Error          string  `json:"error,omitempty"`
}

func NewTrackingController(db *gorm.DB, completionService *services.CompletionService) *TrackingController {
	return &TrackingController{
		DB:                db,
		CompletionService: completionService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (tc *TrackingController) TrackSpot(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	placeID := c.Param("placeId")
	spotID := c.Param("spotId")

	var spot models.Spot
	if err := tc.DB.Where("place_id = ? AND id = ?", placeID, spotID).Take(&spot).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Spot not found"})
		return
	}

	conn, err := tc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("tracking upgrade failed for user %d: %v", user.UserID, err)
		return
	}
	defer conn.Close()

	for {
		var ping locationPing
		if err := conn.ReadJSON(&ping); err != nil {
			// Client went away or sent garbage; tear the stream down.
			return
		}

		distance := services.DistanceMeters(ping.Latitude, ping.Longitude, spot.Latitude, spot.Longitude)
		update := trackingUpdate{
			DistanceMeters: distance,
			WithinRange:    distance <= services.CheckInRadiusMeters,
		}

		if !update.WithinRange {
			if err := conn.WriteJSON(update); err != nil {
				return
			}
			continue
		}

		result, err := tc.CompletionService.MarkSpotCompleted(
			c.Request.Context(), user.UserID, placeID, spotID, spot.Difficulty)
		if err != nil {
			update.Error = "Failed to complete spot"
			conn.WriteJSON(update)
			return
		}

		if result == services.Completed {
			update.Completed = true
			update.PointsAwarded = spot.Difficulty
		}

		// Completed now or previously: either way tracking is over.
		conn.WriteJSON(update)
		return
	}
}
