package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/claudiafierrez/whereisit/services"
	"github.com/claudiafierrez/whereisit/utils"
)

type AchievementController struct {
	AchievementService *services.AchievementService
}

func NewAchievementController(achievementService *services.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievementService}
}

// GetAchievements godoc
// @Summary Per-place completion progress for the caller
// @Tags achievements
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /achievements [get]
func (ac *AchievementController) GetAchievements(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	summaries, err := ac.AchievementService.GetCompletedSpotsByPlaceByUser(c.Request.Context(), user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching achievements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"places":  summaries,
	})
}
