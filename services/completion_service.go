package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/claudiafierrez/whereisit/models"
	"gorm.io/gorm"
)

// CompletionResult distinguishes a first completion from a repeat one.
// Infrastructure failures are reported through the error return instead of
// being folded into the result.
type CompletionResult int

const (
	CompletionFailed CompletionResult = iota
	Completed
	AlreadyCompleted
)

// errAlreadyCompleted propagates a duplicate-key insert out of the
// transaction callback. On Postgres a unique violation aborts the
// transaction, so committing after one fails; returning an error instead
// forces a clean rollback, and MarkSpotCompleted maps it back to a result.
var errAlreadyCompleted = errors.New("spot already completed")

type CompletionService struct {
	DB *gorm.DB
}

func NewCompletionService(db *gorm.DB) *CompletionService {
	return &CompletionService{DB: db}
}

// MarkSpotCompleted records that the user reached the spot and credits the
// spot's difficulty to their points total. The record insert and the points
// increment run in one transaction; the composite primary key on
// completed_spots makes the award at-most-once per (user, spot) even under
// concurrent check-ins.
func (s *CompletionService) MarkSpotCompleted(ctx context.Context, userID uint, placeID, spotID string, difficulty int) (CompletionResult, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.CompletedSpot
		err := tx.Where("user_id = ? AND place_id = ? AND spot_id = ?", userID, placeID, spotID).
			Take(&existing).Error
		if err == nil {
			return errAlreadyCompleted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		record := models.CompletedSpot{
			UserID:  userID,
			PlaceID: placeID,
			SpotID:  spotID,
		}
		err = tx.Create(&record).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent check-in got there first.
			return errAlreadyCompleted
		}
		if err != nil {
			return err
		}

		award := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("points", gorm.Expr("points + ?", difficulty))
		if award.Error != nil {
			return award.Error
		}
		if award.RowsAffected != 1 {
			return fmt.Errorf("award points: user %d not found", userID)
		}

		return nil
	})
	if errors.Is(err, errAlreadyCompleted) {
		return AlreadyCompleted, nil
	}
	if err != nil {
		return CompletionFailed, err
	}

	return Completed, nil
}

func (s *CompletionService) IsSpotCompleted(ctx context.Context, userID uint, placeID, spotID string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.CompletedSpot{}).
		Where("user_id = ? AND place_id = ? AND spot_id = ?", userID, placeID, spotID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
