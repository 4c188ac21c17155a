package models

import (
	"time"
)

// CompletedSpot records that a user reached a spot. The composite primary key
// makes a retried completion target the same row, so the points award in the
// completion transaction can happen at most once per (user, spot).
type CompletedSpot struct {
	UserID    uint      `json:"userId" gorm:"primaryKey"`
	PlaceID   string    `json:"placeId" gorm:"primaryKey;size:64"`
	SpotID    string    `json:"spotId" gorm:"primaryKey;size:64"`
	CreatedAt time.Time `json:"completedAt"`
}
