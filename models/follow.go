package models

import (
	"time"
)

const (
	FollowStatusPending  = "pending"
	FollowStatusAccepted = "accepted"
	FollowStatusRejected = "rejected"
)

// Follow is one directed edge of the social graph. The unique index on the
// (follower, following) pair guarantees a single row per ordered pair even
// when two follow requests race.
type Follow struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerUserID  uint      `gorm:"not null;uniqueIndex:idx_follower_following" json:"followerId"`
	FollowingUserID uint      `gorm:"not null;uniqueIndex:idx_follower_following" json:"followingId"`
	Status          string    `gorm:"not null;default:'pending'" json:"status"` // pending, accepted, rejected
	CreatedAt       time.Time `json:"createdAt"`

	// Denormalized follower display fields for the notification inbox.
	FollowerUsername        string `json:"followerUsername"`
	FollowerProfileImageURL string `json:"followerProfileImageUrl"`

	FollowerUser  User `json:"-" gorm:"foreignKey:FollowerUserID"`
	FollowingUser User `json:"-" gorm:"foreignKey:FollowingUserID"`
}
