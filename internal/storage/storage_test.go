package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/fitplanner/internal"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func planFixture(id, userID string, age time.Duration) *internal.GeneratedPlan {
	return &internal.GeneratedPlan{
		ID:            id,
		UserID:        userID,
		Name:          "Custom Keto Plan",
		GoalType:      internal.GoalWeightLoss,
		DietType:      internal.DietKeto,
		DurationDays:  7,
		DailyCalories: 2278,
		IsCustom:      true,
		Days: []internal.PlanDay{{
			DayNumber: 1,
			Slots:     []internal.MealSlot{{MealType: internal.MealBreakfast, RecipeID: 3, Servings: 1, OrderIndex: 1}},
			Calories:  450,
		}},
		CreatedAt: baseTime.Add(-age),
	}
}

// testPlanRepository runs the shared PlanRepository contract against repo.
func testPlanRepository(t *testing.T, repo PlanRepository) {
	t.Helper()
	ctx := context.Background()

	older := planFixture("plan-a", "alice", 2*time.Hour)
	newer := planFixture("plan-b", "alice", time.Hour)
	other := planFixture("plan-c", "bob", 0)
	for _, p := range []*internal.GeneratedPlan{older, newer, other} {
		require.NoError(t, repo.SavePlan(ctx, p))
	}

	got, err := repo.GetPlan(ctx, "plan-a")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserID)
	assert.Equal(t, older.Days, got.Days)
	assert.True(t, older.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.GetPlan(ctx, "missing")
	assert.ErrorIs(t, err, internal.ErrNotFound)

	list, err := repo.ListPlans(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "plan-b", list[0].ID)
	assert.Equal(t, "plan-a", list[1].ID)

	list, err = repo.ListPlans(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, list)

	// saving again replaces rather than duplicates
	older.Name = "Renamed"
	older.CreatedAt = baseTime
	require.NoError(t, repo.SavePlan(ctx, older))
	list, err = repo.ListPlans(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "plan-a", list[0].ID)
	assert.Equal(t, "Renamed", list[0].Name)
}

// testSeededCatalog checks that repo serves the built-in catalog.
func testSeededCatalog(t *testing.T, repo CatalogRepository) {
	t.Helper()
	snap, err := LoadSnapshot(context.Background(), repo)
	require.NoError(t, err)
	assert.Len(t, snap.DietTypes, 8)
	require.Len(t, snap.Recipes, 15)
	assert.Len(t, snap.DietPlans, 5)
	assert.Len(t, snap.WorkoutPlans, 5)

	r := snap.Recipes[2]
	assert.Equal(t, 3, r.ID)
	assert.Equal(t, internal.MealBreakfast, r.MealType)
	assert.True(t, r.HasDietType(internal.DietKeto))
	assert.NotEmpty(t, r.Ingredients)
	assert.Equal(t, 1, snap.DietPlans[0].ID)
	assert.Equal(t, 1800, snap.DietPlans[0].DailyCalories)
	assert.Equal(t, internal.DifficultyAdvanced, snap.WorkoutPlans[3].DifficultyLevel)

	require.Len(t, snap.MealPlans, 5)
	muscle := snap.MealPlans[2]
	assert.Equal(t, 2, muscle.DietPlanID)
	require.Len(t, muscle.Recipes, 4)
	assert.InDelta(t, 1.5, muscle.Recipes[1].Servings, 1e-9)
	assert.Empty(t, snap.MealPlans[1].Recipes)

	require.Len(t, snap.WorkoutDays, 22)
	day := snap.WorkoutDays[0]
	assert.Equal(t, "Full Body", day.FocusArea)
	require.Len(t, day.Exercises, 4)
	assert.Equal(t, 9, day.Exercises[3].ExerciseID)
	assert.Equal(t, 1, day.Exercises[3].DurationMinutes)
	assert.Zero(t, day.Exercises[3].Reps)

	assert.Len(t, snap.ExerciseCategories, 5)
	require.Len(t, snap.Exercises, 15)
	assert.Equal(t, 4, snap.Exercises[13].CategoryID)
	assert.InDelta(t, 12, snap.Exercises[13].CaloriesPerMinute, 1e-9)

	require.Len(t, snap.Foods, 10)
	assert.Equal(t, "10", snap.Foods[9].ID)
	assert.Equal(t, "Fage", snap.Foods[5].Brand)
	assert.True(t, snap.Foods[0].IsVerified)
}
