package services

import (
	"context"

	"github.com/claudiafierrez/whereisit/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// PlaceAchievements summarises a user's progress in one place: every spot the
// place has, partitioned into completed and pending.
type PlaceAchievements struct {
	PlaceID      string        `json:"placeId"`
	PlaceName    string        `json:"placeName"`
	Spots        []models.Spot `json:"spots"`
	CompletedIDs []string      `json:"completedIds"`
	Completed    []models.Spot `json:"completed"`
	Pending      []models.Spot `json:"pending"`
	Total        int           `json:"total"`
}

type AchievementService struct {
	DB *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{DB: db}
}

// GetCompletedSpotsByPlaceByUser walks the whole place catalog and crosses
// each place's spots against the user's completion records. The per-place
// queries run in parallel; places are pre-sorted by name so the output order
// does not depend on scheduling. Spot rows missing a name or difficulty are
// skipped rather than failing the aggregation.
func (s *AchievementService) GetCompletedSpotsByPlaceByUser(ctx context.Context, userID uint) ([]PlaceAchievements, error) {
	db := s.DB.WithContext(ctx)

	var places []models.Place
	if err := db.Order("name").Find(&places).Error; err != nil {
		return nil, err
	}

	results := make([]PlaceAchievements, len(places))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, place := range places {
		i, place := i, place
		g.Go(func() error {
			summary, err := s.placeSummary(ctx, userID, place)
			if err != nil {
				return err
			}
			results[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (s *AchievementService) placeSummary(ctx context.Context, userID uint, place models.Place) (PlaceAchievements, error) {
	db := s.DB.WithContext(ctx)

	var spots []models.Spot
	if err := db.Where("place_id = ?", place.ID).Order("name").Find(&spots).Error; err != nil {
		return PlaceAchievements{}, err
	}

	var records []models.CompletedSpot
	err := db.Where("user_id = ? AND place_id = ?", userID, place.ID).Find(&records).Error
	if err != nil {
		return PlaceAchievements{}, err
	}

	completedSet := make(map[string]bool, len(records))
	for _, r := range records {
		completedSet[r.SpotID] = true
	}

	summary := PlaceAchievements{
		PlaceID:      place.ID,
		PlaceName:    place.Name,
		Spots:        []models.Spot{},
		CompletedIDs: []string{},
		Completed:    []models.Spot{},
		Pending:      []models.Spot{},
	}

	for _, spot := range spots {
		if spot.Name == "" || spot.Difficulty <= 0 {
			// Malformed catalog row, leave it out of the summary.
			continue
		}

		summary.Spots = append(summary.Spots, spot)
		if completedSet[spot.ID] {
			summary.CompletedIDs = append(summary.CompletedIDs, spot.ID)
			summary.Completed = append(summary.Completed, spot)
		} else {
			summary.Pending = append(summary.Pending, spot)
		}
	}
	summary.Total = len(summary.Spots)

	return summary, nil
}
