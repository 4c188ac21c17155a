package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/claudiafierrez/whereisit/models"
	"github.com/claudiafierrez/whereisit/services"
	"github.com/claudiafierrez/whereisit/utils"
	"gorm.io/gorm"
)

type FollowController struct {
	DB            *gorm.DB
	FollowService *services.FollowService
}

func NewFollowController(db *gorm.DB, followService *services.FollowService) *FollowController {
	return &FollowController{DB: db, FollowService: followService}
}

func (fc *FollowController) targetUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return uint(id), true
}

// FollowUser godoc
// @Summary Request to follow a user
// @Description Creates a pending request; re-requesting after a rejection resets it, an accepted relation is untouched
// @Tags follows
// @Produce json
// @Param userId path integer true "User ID to follow"
// @Success 200 {object} map[string]interface{}
// @Router /users/{userId}/follow [post]
func (fc *FollowController) FollowUser(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	targetID, ok := fc.targetUserID(c)
	if !ok {
		return
	}

	var targetUser models.User
	if err := fc.DB.First(&targetUser, targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	err := fc.FollowService.FollowUser(c.Request.Context(), user.UserID, targetID)
	if errors.Is(err, services.ErrSelfFollow) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	status, err := fc.FollowService.GetFollowStatus(c.Request.Context(), user.UserID, targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch follow status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  status.Status,
	})
}

func (fc *FollowController) UnfollowUser(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	targetID, ok := fc.targetUserID(c)
	if !ok {
		return
	}

	if err := fc.FollowService.UnfollowUser(c.Request.Context(), user.UserID, targetID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Successfully unfollowed user"})
}

// CancelFollowRequest withdraws a pending request; accepted relations are
// untouched.
func (fc *FollowController) CancelFollowRequest(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	targetID, ok := fc.targetUserID(c)
	if !ok {
		return
	}

	if err := fc.FollowService.CancelFollowRequest(c.Request.Context(), user.UserID, targetID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel follow request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Follow request cancelled"})
}

func (fc *FollowController) GetFollowStatus(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	targetID, ok := fc.targetUserID(c)
	if !ok {
		return
	}

	status, err := fc.FollowService.GetFollowStatus(c.Request.Context(), user.UserID, targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch follow status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": status})
}

func (fc *FollowController) AcceptFollow(c *gin.Context) {
	fc.resolveFollow(c, fc.FollowService.AcceptFollow, "Follow request accepted")
}

func (fc *FollowController) RejectFollow(c *gin.Context) {
	fc.resolveFollow(c, fc.FollowService.RejectFollow, "Follow request rejected")
}

func (fc *FollowController) resolveFollow(c *gin.Context, resolve func(ctx context.Context, followID uint) error, message string) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	followID, err := strconv.ParseUint(c.Param("followId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid follow id"})
		return
	}

	err = resolve(c.Request.Context(), uint(followID))
	if errors.Is(err, services.ErrFollowNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Follow request not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update follow request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// GetPendingRequests godoc
// @Summary Pending follow requests addressed to the caller
// @Tags follows
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /follow-requests [get]
func (fc *FollowController) GetPendingRequests(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	requests, err := fc.FollowService.GetPendingRequests(c.Request.Context(), user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch follow requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"requests": requests,
	})
}
