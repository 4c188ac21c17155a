package controllers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/claudiafierrez/whereisit/controllers"
	"github.com/claudiafierrez/whereisit/middleware"
	"github.com/claudiafierrez/whereisit/services"
	"github.com/claudiafierrez/whereisit/testutil"
)

func newUserRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	userController := controllers.NewUserController(
		db,
		services.NewUserService(db),
		services.NewFollowService(db),
		services.NewLeaderboardService(db, nil),
	)

	r := gin.New()
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/users/search", userController.SearchUsers)
		protected.GET("/users/:userId/profile", userController.GetUserProfile)
	}

	return r
}

func TestUserProfile_Counts(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	r := newUserRouter(t, db)

	anna := testutil.CreateUser(t, db, "anna")
	bernat := testutil.CreateUser(t, db, "bernat")
	testutil.CreatePlace(t, db, "barcelona", "Barcelona")
	testutil.CreateSpot(t, db, "barcelona", "sagrada-familia", "Sagrada Familia", 10)

	completions := services.NewCompletionService(db)
	_, err := completions.MarkSpotCompleted(ctx, bernat.ID, "barcelona", "sagrada-familia", 10)
	require.NoError(t, err)

	w := do(t, r, http.MethodGet, fmt.Sprintf("/api/users/%d/profile", bernat.ID), tokenFor(t, anna.ID))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Username       string `json:"username"`
			SpotsCompleted int64  `json:"spotsCompleted"`
			FollowersCount int64  `json:"followersCount"`
			IsOwnProfile   bool   `json:"isOwnProfile"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "bernat", resp.Data.Username)
	require.EqualValues(t, 1, resp.Data.SpotsCompleted)
	require.Zero(t, resp.Data.FollowersCount)
	require.False(t, resp.Data.IsOwnProfile)
}

func TestUserProfile_StatsFailureReturns500(t *testing.T) {
	db := testutil.OpenTestDB(t)
	r := newUserRouter(t, db)

	anna := testutil.CreateUser(t, db, "anna")
	bernat := testutil.CreateUser(t, db, "bernat")
	token := tokenFor(t, anna.ID)

	w := do(t, r, http.MethodGet, fmt.Sprintf("/api/users/%d/profile", bernat.ID), token)
	require.Equal(t, http.StatusOK, w.Code)

	// A broken store surfaces as an error, not as zeroed counts.
	require.NoError(t, db.Exec("DROP TABLE completed_spots").Error)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/users/%d/profile", bernat.ID), token)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
