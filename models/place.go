package models

import (
	"time"
)

// Place is read-only reference data seeded out-of-band. The ID is a stable
// string key ("barcelona") so completed-spot records stay meaningful across
// environments.
type Place struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	Name      string    `json:"name" gorm:"not null"`
	Spots     []Spot    `json:"spots,omitempty" gorm:"foreignKey:PlaceID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
