package models

import (
	"time"
)

type Spot struct {
	ID                string    `json:"id" gorm:"primaryKey;size:64"`
	PlaceID           string    `json:"placeId" gorm:"primaryKey;size:64;not null"`
	Place             Place     `json:"-" gorm:"foreignKey:PlaceID"`
	Name              string    `json:"name" gorm:"not null"`
	Description       string    `json:"description" gorm:"type:text"`
	Latitude          float64   `json:"latitude" gorm:"not null;type:decimal(10,8)"`
	Longitude         float64   `json:"longitude" gorm:"not null;type:decimal(11,8)"`
	StreetViewHeading int       `json:"streetViewHeading"`
	StreetViewPitch   int       `json:"streetViewPitch"`
	Difficulty        int       `json:"difficulty" gorm:"not null;default:0"` // points awarded on completion
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
