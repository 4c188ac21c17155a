package services

import (
	"context"
	"errors"
	"time"

	"github.com/claudiafierrez/whereisit/models"
	"gorm.io/gorm"
)

var (
	ErrSelfFollow     = errors.New("cannot follow yourself")
	ErrFollowNotFound = errors.New("follow relation not found")
)

// FollowStatus describes the relation from one user towards another. A zero
// Exists means no relation at all.
type FollowStatus struct {
	Exists   bool   `json:"exists"`
	Status   string `json:"status,omitempty"`
	FollowID uint   `json:"followId,omitempty"`
}

type FollowService struct {
	DB *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{DB: db}
}

func (s *FollowService) GetFollowStatus(ctx context.Context, followerID, followingID uint) (FollowStatus, error) {
	var follow models.Follow
	err := s.DB.WithContext(ctx).
		Where("follower_user_id = ? AND following_user_id = ?", followerID, followingID).
		Limit(1).
		Take(&follow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return FollowStatus{}, nil
	}
	if err != nil {
		return FollowStatus{}, err
	}

	return FollowStatus{Exists: true, Status: follow.Status, FollowID: follow.ID}, nil
}

// FollowUser requests to follow another user. An accepted relation is left
// untouched; a pending or rejected one is reset to pending with a fresh
// timestamp, so re-requesting after a rejection works. Otherwise a new
// pending row is created with the follower's display fields denormalized for
// the addressee's inbox.
func (s *FollowService) FollowUser(ctx context.Context, followerID, followingID uint) error {
	if followerID == followingID {
		return ErrSelfFollow
	}

	db := s.DB.WithContext(ctx)

	var existing models.Follow
	err := db.Where("follower_user_id = ? AND following_user_id = ?", followerID, followingID).
		Limit(1).
		Take(&existing).Error
	if err == nil {
		return s.resetToPending(db, &existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var follower models.User
	if err := db.First(&follower, followerID).Error; err != nil {
		return err
	}

	follow := models.Follow{
		FollowerUserID:          followerID,
		FollowingUserID:         followingID,
		Status:                  models.FollowStatusPending,
		CreatedAt:               time.Now(),
		FollowerUsername:        follower.Username,
		FollowerProfileImageURL: follower.ProfileImageURL,
	}

	err = db.Create(&follow).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race against a concurrent request for the same pair; the
		// unique index kept a single row, treat it as the existing relation.
		if err := db.Where("follower_user_id = ? AND following_user_id = ?", followerID, followingID).
			Take(&existing).Error; err != nil {
			return err
		}
		return s.resetToPending(db, &existing)
	}

	return err
}

func (s *FollowService) resetToPending(db *gorm.DB, follow *models.Follow) error {
	if follow.Status == models.FollowStatusAccepted {
		return nil
	}

	return db.Model(follow).Updates(map[string]any{
		"status":     models.FollowStatusPending,
		"created_at": time.Now(),
	}).Error
}

func (s *FollowService) UnfollowUser(ctx context.Context, followerID, followingID uint) error {
	return s.DB.WithContext(ctx).
		Where("follower_user_id = ? AND following_user_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

func (s *FollowService) AcceptFollow(ctx context.Context, followID uint) error {
	return s.setStatus(ctx, followID, models.FollowStatusAccepted)
}

func (s *FollowService) RejectFollow(ctx context.Context, followID uint) error {
	return s.setStatus(ctx, followID, models.FollowStatusRejected)
}

func (s *FollowService) setStatus(ctx context.Context, followID uint, status string) error {
	tx := s.DB.WithContext(ctx).
		Model(&models.Follow{}).
		Where("id = ?", followID).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrFollowNotFound
	}

	return nil
}

// CancelFollowRequest withdraws a pending request. Accepted or rejected
// relations are left alone so a stale cancel tap cannot sever an established
// follow.
func (s *FollowService) CancelFollowRequest(ctx context.Context, followerID, followingID uint) error {
	return s.DB.WithContext(ctx).
		Where("follower_user_id = ? AND following_user_id = ? AND status = ?",
			followerID, followingID, models.FollowStatusPending).
		Delete(&models.Follow{}).Error
}

// GetPendingRequests returns the follow requests addressed to userID, newest
// first, for the notification inbox.
func (s *FollowService) GetPendingRequests(ctx context.Context, userID uint) ([]models.Follow, error) {
	var requests []models.Follow
	err := s.DB.WithContext(ctx).
		Where("following_user_id = ? AND status = ?", userID, models.FollowStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	return requests, nil
}
