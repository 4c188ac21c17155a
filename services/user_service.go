package services

import (
	"context"
	"errors"
	"strings"

	"github.com/claudiafierrez/whereisit/models"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

const searchResultLimit = 20

// UserSummary is the slim shape the social search screen renders.
type UserSummary struct {
	UserID          uint   `json:"userId"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profileImageUrl"`
}

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// escapeLikePrefix neutralizes LIKE metacharacters so the prefix matches
// literally. Underscores are legal in usernames, so an unescaped `_` would
// match any character.
func escapeLikePrefix(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// SearchUsersByUsername does a case-normalized prefix match over usernames.
// Usernames are stored lowercased, so lowercasing the prefix makes LIKE a
// plain index-friendly range scan. The caller is excluded and results are
// capped at 20.
func (s *UserService) SearchUsersByUsername(ctx context.Context, prefix string, excludeUserID uint) ([]UserSummary, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return []UserSummary{}, nil
	}

	var users []models.User
	err := s.DB.WithContext(ctx).
		Where(`username LIKE ? ESCAPE '\'`, escapeLikePrefix(prefix)+"%").
		Where("id <> ?", excludeUserID).
		Order("username").
		Limit(searchResultLimit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, UserSummary{
			UserID:          u.ID,
			Username:        u.Username,
			ProfileImageURL: u.ProfileImageURL,
		})
	}

	return summaries, nil
}

func (s *UserService) GetUserProfile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *UserService) UpdateUserNames(ctx context.Context, userID uint, firstName, lastName string) error {
	tx := s.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"first_name": firstName,
			"last_name":  lastName,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (s *UserService) SetProfileImageURL(ctx context.Context, userID uint, url string) error {
	tx := s.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("profile_image_url", url)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
