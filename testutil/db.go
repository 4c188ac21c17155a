package testutil

import (
	"fmt"
	"testing"

	"github.com/claudiafierrez/whereisit/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB returns a migrated in-memory sqlite database. The pool is capped
// at one connection: every new connection to ":memory:" would otherwise get
// its own empty database.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Place{},
		&models.Spot{},
		&models.CompletedSpot{},
		&models.Follow{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

// CreateUser inserts a user with sensible defaults derived from the username.
func CreateUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Email:     fmt.Sprintf("%s@example.com", username),
		Password:  "not-a-real-hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}

	return user
}

func CreatePlace(t *testing.T, db *gorm.DB, id, name string) models.Place {
	t.Helper()

	place := models.Place{ID: id, Name: name}
	if err := db.Create(&place).Error; err != nil {
		t.Fatalf("create place %q: %v", id, err)
	}

	return place
}

func CreateSpot(t *testing.T, db *gorm.DB, placeID, id, name string, difficulty int) models.Spot {
	t.Helper()

	spot := models.Spot{
		ID:          id,
		PlaceID:     placeID,
		Name:        name,
		Description: "a spot",
		Latitude:    41.403629,
		Longitude:   2.174356,
		Difficulty:  difficulty,
	}
	if err := db.Create(&spot).Error; err != nil {
		t.Fatalf("create spot %q: %v", id, err)
	}

	return spot
}
