package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/claudiafierrez/whereisit/models"
	"github.com/claudiafierrez/whereisit/services"
	"github.com/claudiafierrez/whereisit/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCompletionService_AwardsPointsOnce(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	svc := services.NewCompletionService(db)

	user := testutil.CreateUser(t, db, "alice")
	testutil.CreatePlace(t, db, "barcelona", "Barcelona")
	testutil.CreateSpot(t, db, "barcelona", "sagrada-familia", "Sagrada Familia", 10)

	require.NoError(t, db.Model(&user).Update("points", 50).Error)

	result, err := svc.MarkSpotCompleted(ctx, user.ID, "barcelona", "sagrada-familia", 10)
	require.NoError(t, err)
	require.Equal(t, services.Completed, result)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	require.EqualValues(t, 60, reloaded.Points)

	// A retry targets the same record and awards nothing.
	result, err = svc.MarkSpotCompleted(ctx, user.ID, "barcelona", "sagrada-familia", 10)
	require.NoError(t, err)
	require.Equal(t, services.AlreadyCompleted, result)

	require.NoError(t, db.First(&reloaded, user.ID).Error)
	require.EqualValues(t, 60, reloaded.Points)

	var count int64
	db.Model(&models.CompletedSpot{}).Where("user_id = ?", user.ID).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestCompletionService_DuplicateInsertMapsToAlreadyCompleted(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	svc := services.NewCompletionService(db)

	user := testutil.CreateUser(t, db, "alice")
	testutil.CreatePlace(t, db, "barcelona", "Barcelona")
	testutil.CreateSpot(t, db, "barcelona", "sagrada-familia", "Sagrada Familia", 10)

	// Slip a rival completion in between the existence check and the insert
	// so the insert trips the primary key. The loser has to come back as
	// AlreadyCompleted through a rolled-back transaction, not as an error.
	var fired bool
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("rival_checkin", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != "completed_spots" {
			return
		}
		fired = true
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			`INSERT INTO completed_spots (user_id, place_id, spot_id, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
			user.ID, "barcelona", "sagrada-familia",
		)
	}))

	result, err := svc.MarkSpotCompleted(ctx, user.ID, "barcelona", "sagrada-familia", 10)
	require.NoError(t, err)
	require.Equal(t, services.AlreadyCompleted, result)

	// No points for the loser.
	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	require.EqualValues(t, 0, reloaded.Points)
}

func TestCompletionService_ConcurrentCheckInsAwardOnce(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	svc := services.NewCompletionService(db)

	user := testutil.CreateUser(t, db, "alice")
	testutil.CreatePlace(t, db, "barcelona", "Barcelona")
	testutil.CreateSpot(t, db, "barcelona", "sagrada-familia", "Sagrada Familia", 10)

	type outcome struct {
		result services.CompletionResult
		err    error
	}

	outcomes := make(chan outcome, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.MarkSpotCompleted(ctx, user.ID, "barcelona", "sagrada-familia", 10)
			outcomes <- outcome{result: result, err: err}
		}()
	}
	wg.Wait()
	close(outcomes)

	var completed, already int
	for o := range outcomes {
		require.NoError(t, o.err)
		switch o.result {
		case services.Completed:
			completed++
		case services.AlreadyCompleted:
			already++
		}
	}
	require.Equal(t, 1, completed)
	require.Equal(t, 1, already)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	require.EqualValues(t, 10, reloaded.Points)

	var count int64
	db.Model(&models.CompletedSpot{}).Where("user_id = ?", user.ID).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestCompletionService_IndependentSpotsBothAward(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	svc := services.NewCompletionService(db)

	user := testutil.CreateUser(t, db, "alice")
	testutil.CreatePlace(t, db, "barcelona", "Barcelona")
	testutil.CreateSpot(t, db, "barcelona", "sagrada-familia", "Sagrada Familia", 10)
	testutil.CreateSpot(t, db, "barcelona", "park-guell", "Park Guell", 5)

	result, err := svc.MarkSpotCompleted(ctx, user.ID, "barcelona", "sagrada-familia", 10)
	require.NoError(t, err)
	require.Equal(t, services.Completed, result)

	result, err = svc.MarkSpotCompleted(ctx, user.ID, "barcelona", "park-guell", 5)
	require.NoError(t, err)
	require.Equal(t, services.Completed, result)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	require.EqualValues(t, 15, reloaded.Points)
}

func TestCompletionService_SameSpotIDDifferentPlace(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	svc := services.NewCompletionService(db)

	user := testutil.CreateUser(t, db, "alice")
	testutil.CreatePlace(t, db, "barcelona", "Barcelona")
	testutil.CreatePlace(t, db, "girona", "Girona")
	testutil.CreateSpot(t, db, "barcelona", "cathedral", "Barcelona Cathedral", 10)
	testutil.CreateSpot(t, db, "girona", "cathedral", "Girona Cathedral", 10)

	// The record key is the (place, spot) pair, not the spot id alone.
	result, err := svc.MarkSpotCompleted(ctx, user.ID, "barcelona", "cathedral", 10)
	require.NoError(t, err)
	require.Equal(t, services.Completed, result)

	result, err = svc.MarkSpotCompleted(ctx, user.ID, "girona", "cathedral", 10)
	require.NoError(t, err)
	require.Equal(t, services.Completed, result)
}

func TestCompletionService_UnknownUserFailsWithoutRecord(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	svc := services.NewCompletionService(db)

	result, err := svc.MarkSpotCompleted(ctx, 999, "barcelona", "sagrada-familia", 10)
	require.Error(t, err)
	require.Equal(t, services.CompletionFailed, result)

	// The transaction rolled the record back along with the failed award.
	var count int64
	db.Model(&models.CompletedSpot{}).Count(&count)
	require.Zero(t, count)
}

func TestCompletionService_IsSpotCompleted(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	svc := services.NewCompletionService(db)

	user := testutil.CreateUser(t, db, "alice")
	testutil.CreatePlace(t, db, "barcelona", "Barcelona")
	testutil.CreateSpot(t, db, "barcelona", "sagrada-familia", "Sagrada Familia", 10)

	done, err := svc.IsSpotCompleted(ctx, user.ID, "barcelona", "sagrada-familia")
	require.NoError(t, err)
	require.False(t, done)

	_, err = svc.MarkSpotCompleted(ctx, user.ID, "barcelona", "sagrada-familia", 10)
	require.NoError(t, err)

	done, err = svc.IsSpotCompleted(ctx, user.ID, "barcelona", "sagrada-familia")
	require.NoError(t, err)
	require.True(t, done)
}
