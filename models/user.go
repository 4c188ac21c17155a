package models

import (
	"time"
)

type User struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Username        string         `gorm:"unique;not null" json:"username"` // stored lowercased
	FirstName       string         `json:"first_name"`
	LastName        string         `json:"last_name"`
	Email           string         `gorm:"unique;not null" json:"email"`
	Password        string         `gorm:"not null" json:"-"` // Don't expose password in JSON
	ProfileImageURL string         `json:"profile_image_url"`
	Points          int64          `gorm:"not null;default:0" json:"points"` // only ever incremented by spot completions
	RefreshTokens   []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
}
