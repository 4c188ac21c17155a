package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/claudiafierrez/whereisit/models"
	"github.com/claudiafierrez/whereisit/services"
	"github.com/claudiafierrez/whereisit/utils"
	"gorm.io/gorm"
)

type UserController struct {
	DB                 *gorm.DB
	UserService        *services.UserService
	FollowService      *services.FollowService
	LeaderboardService *services.LeaderboardService
}

func NewUserController(db *gorm.DB, userService *services.UserService, followService *services.FollowService, leaderboardService *services.LeaderboardService) *UserController {
	return &UserController{
		DB:                 db,
		UserService:        userService,
		FollowService:      followService,
		LeaderboardService: leaderboardService,
	}
}

// SearchUsers godoc
// @Summary Search users by username prefix
// @Description Case-insensitive prefix search, capped at 20 results, the caller excluded
// @Tags users
// @Produce json
// @Param q query string true "Username prefix"
// @Success 200 {object} map[string]interface{}
// @Router /users/search [get]
func (uc *UserController) SearchUsers(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	results, err := uc.UserService.SearchUsersByUsername(c.Request.Context(), query, user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error searching users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   results,
		"query":   query,
	})
}

// GetUserProfile godoc
// @Summary Get another user's public profile
// @Description Includes follower counts and the caller's follow relation towards the user
// @Tags users
// @Produce json
// @Param userId path integer true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{userId}/profile [get]
func (uc *UserController) GetUserProfile(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	target, err := uc.UserService.GetUserProfile(c.Request.Context(), uint(userID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var stats struct {
		FollowersCount int64 `json:"followersCount"`
		FollowingCount int64 `json:"followingCount"`
		SpotsCompleted int64 `json:"spotsCompleted"`
	}

	if err := uc.DB.Model(&models.Follow{}).Where("following_user_id = ? AND status = ?", target.ID, models.FollowStatusAccepted).Count(&stats.FollowersCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching profile stats"})
		return
	}
	if err := uc.DB.Model(&models.Follow{}).Where("follower_user_id = ? AND status = ?", target.ID, models.FollowStatusAccepted).Count(&stats.FollowingCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching profile stats"})
		return
	}
	if err := uc.DB.Model(&models.CompletedSpot{}).Where("user_id = ?", target.ID).Count(&stats.SpotsCompleted).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching profile stats"})
		return
	}

	followStatus := services.FollowStatus{}
	if currentUser.UserID != target.ID {
		followStatus, err = uc.FollowService.GetFollowStatus(c.Request.Context(), currentUser.UserID, target.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching follow status"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":              target.ID,
			"username":        target.Username,
			"firstName":       target.FirstName,
			"lastName":        target.LastName,
			"profileImageUrl": target.ProfileImageURL,
			"points":          target.Points,
			"createdAt":       target.CreatedAt,
			"isOwnProfile":    currentUser.UserID == target.ID,
			"isFollowing":     followStatus.Status == models.FollowStatusAccepted,
			"isFollowPending": followStatus.Status == models.FollowStatusPending,
			"followersCount":  stats.FollowersCount,
			"followingCount":  stats.FollowingCount,
			"spotsCompleted":  stats.SpotsCompleted,
		},
	})
}

// GetTopUsers godoc
// @Summary Leaderboard of users by points
// @Tags users
// @Produce json
// @Param limit query integer false "Max results (default: 50)"
// @Success 200 {object} map[string]interface{}
// @Router /users/top [get]
func (uc *UserController) GetTopUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	topUsers, err := uc.LeaderboardService.TopUsers(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"topUsers": topUsers,
	})
}
