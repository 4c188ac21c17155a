package services_test

import (
	"context"
	"testing"

	"github.com/claudiafierrez/whereisit/services"
	"github.com/claudiafierrez/whereisit/testutil"
	"github.com/stretchr/testify/require"
)

func TestAchievementService_PartitionsCompletedAndPending(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	achievements := services.NewAchievementService(db)
	completions := services.NewCompletionService(db)

	user := testutil.CreateUser(t, db, "alice")
	testutil.CreatePlace(t, db, "barcelona", "Barcelona")
	for _, id := range []string{"spot-a", "spot-b", "spot-c", "spot-d", "spot-e"} {
		testutil.CreateSpot(t, db, "barcelona", id, "Spot "+id, 5)
	}

	for _, id := range []string{"spot-a", "spot-c"} {
		result, err := completions.MarkSpotCompleted(ctx, user.ID, "barcelona", id, 5)
		require.NoError(t, err)
		require.Equal(t, services.Completed, result)
	}

	summaries, err := achievements.GetCompletedSpotsByPlaceByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	barcelona := summaries[0]
	require.Equal(t, "barcelona", barcelona.PlaceID)
	require.Equal(t, "Barcelona", barcelona.PlaceName)
	require.Equal(t, 5, barcelona.Total)
	require.ElementsMatch(t, []string{"spot-a", "spot-c"}, barcelona.CompletedIDs)
	require.Len(t, barcelona.Completed, 2)
	require.Len(t, barcelona.Pending, 3)
}

func TestAchievementService_CompletionsScopedPerUserAndPlace(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	achievements := services.NewAchievementService(db)
	completions := services.NewCompletionService(db)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	testutil.CreatePlace(t, db, "barcelona", "Barcelona")
	testutil.CreatePlace(t, db, "girona", "Girona")
	testutil.CreateSpot(t, db, "barcelona", "spot-a", "Spot A", 5)
	testutil.CreateSpot(t, db, "girona", "spot-b", "Spot B", 5)

	_, err := completions.MarkSpotCompleted(ctx, bob.ID, "barcelona", "spot-a", 5)
	require.NoError(t, err)

	summaries, err := achievements.GetCompletedSpotsByPlaceByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Places come back sorted by name; Bob's completion doesn't leak into
	// Alice's summary.
	require.Equal(t, "Barcelona", summaries[0].PlaceName)
	require.Equal(t, "Girona", summaries[1].PlaceName)
	require.Empty(t, summaries[0].CompletedIDs)
	require.Empty(t, summaries[1].CompletedIDs)
}

func TestAchievementService_SkipsMalformedSpots(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	achievements := services.NewAchievementService(db)

	user := testutil.CreateUser(t, db, "alice")
	testutil.CreatePlace(t, db, "barcelona", "Barcelona")
	testutil.CreateSpot(t, db, "barcelona", "spot-good", "Spot Good", 5)

	// A catalog row with an empty name and zero difficulty is left out rather
	// than failing the whole aggregation.
	require.NoError(t, db.Exec(
		`INSERT INTO spots (id, place_id, name, difficulty, latitude, longitude) VALUES ('spot-bad', 'barcelona', '', 0, 41.403629, 2.174356)`,
	).Error)

	summaries, err := achievements.GetCompletedSpotsByPlaceByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, 1, summaries[0].Total)
	require.Equal(t, "spot-good", summaries[0].Spots[0].ID)
}

func TestAchievementService_EmptyCatalog(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	achievements := services.NewAchievementService(db)

	user := testutil.CreateUser(t, db, "alice")

	summaries, err := achievements.GetCompletedSpotsByPlaceByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, summaries)
}
