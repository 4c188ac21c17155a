package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/claudiafierrez/whereisit/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const leaderboardCacheTTL = 60 * time.Second

type RankedUser struct {
	UserID          uint   `json:"userId"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profileImageUrl"`
	Points          int64  `json:"points"`
	Rank            int    `json:"rank"`
}

type LeaderboardService struct {
	DB    *gorm.DB
	Redis *redis.Client // optional; nil disables caching
}

func NewLeaderboardService(db *gorm.DB, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{DB: db, Redis: rdb}
}

// TopUsers returns the highest-scoring users. Results are served cache-aside
// from Redis when a client is configured; a cache failure falls through to
// the database rather than failing the request.
func (s *LeaderboardService) TopUsers(ctx context.Context, limit int) ([]RankedUser, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	cacheKey := fmt.Sprintf("leaderboard:top:%d", limit)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var ranked []RankedUser
			if err := json.Unmarshal([]byte(cached), &ranked); err == nil {
				return ranked, nil
			}
		}
	}

	var users []models.User
	err := s.DB.WithContext(ctx).
		Order("points DESC, username").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedUser, 0, len(users))
	for i, u := range users {
		ranked = append(ranked, RankedUser{
			UserID:          u.ID,
			Username:        u.Username,
			ProfileImageURL: u.ProfileImageURL,
			Points:          u.Points,
			Rank:            i + 1,
		})
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(ranked); err == nil {
			s.Redis.Set(ctx, cacheKey, payload, leaderboardCacheTTL)
		}
	}

	return ranked, nil
}
