package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"

	"github.com/claudiafierrez/whereisit/config"
	"github.com/claudiafierrez/whereisit/services"
	"github.com/claudiafierrez/whereisit/utils"
)

const maxAvatarBytes = 5 * 1024 * 1024

type UploadController struct {
	R2Client    *s3.Client
	R2Config    *config.R2Config
	UserService *services.UserService
}

type AvatarUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

func NewUploadController(userService *services.UserService) *UploadController {
	r2Config := config.GetR2Config()

	r2Client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &UploadController{
		R2Client:    r2Client,
		R2Config:    r2Config,
		UserService: userService,
	}
}

// GetAvatarUploadURL godoc
// @Summary Presigned PUT URL for the caller's profile image
// @Description The object key is profileImages/{userId}.jpg; re-uploading overwrites it
// @Tags uploads
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /uploads/avatar [post]
func (uc *UploadController) GetAvatarUploadURL(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !uc.isValidAvatarFile(req.ContentType, req.FileSize) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid avatar file type or size"})
		return
	}

	key := avatarKey(user.UserID)
	uploadURL, err := uc.createPresignedURL(c.Request.Context(), key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploadUrl": uploadURL,
		"fileUrl":   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
		"key":       key,
		"expiresIn": 900,
	})
}

// ConfirmAvatarUpload godoc
// @Summary Confirm a finished avatar upload
// @Description Verifies the object exists in the bucket, then stores the public URL on the user
// @Tags uploads
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /uploads/avatar/confirm [post]
func (uc *UploadController) ConfirmAvatarUpload(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	key := avatarKey(user.UserID)
	exists, err := uc.verifyFileExists(c.Request.Context(), key)
	if err != nil || !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar upload not found"})
		return
	}

	fileURL := fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key)
	if err := uc.UserService.SetProfileImageURL(c.Request.Context(), user.UserID, fileURL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"fileUrl": fileURL,
	})
}

func (uc *UploadController) isValidAvatarFile(contentType string, fileSize int64) bool {
	validTypes := []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}
	for _, t := range validTypes {
		if contentType == t {
			return fileSize > 0 && fileSize <= maxAvatarBytes
		}
	}
	return false
}

func avatarKey(userID uint) string {
	return fmt.Sprintf("profileImages/%d.jpg", userID)
}

func (uc *UploadController) createPresignedURL(ctx context.Context, key, contentType string) (string, error) {
	presignClient := s3.NewPresignClient(uc.R2Client)

	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = 15 * time.Minute
	})
	if err != nil {
		return "", err
	}

	return request.URL, nil
}

func (uc *UploadController) verifyFileExists(ctx context.Context, key string) (bool, error) {
	_, err := uc.R2Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, nil
	}

	return true, nil
}
