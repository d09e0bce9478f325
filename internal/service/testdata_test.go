package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yourname/fitplanner/internal"
	"github.com/yourname/fitplanner/internal/storage"
)

func seedCatalog(t *testing.T) *storage.Catalog {
	t.Helper()
	c, err := storage.SeedCatalog()
	require.NoError(t, err)
	return c
}

// exampleProfile targets 2278 kcal.
func exampleProfile() internal.UserProfile {
	return internal.UserProfile{
		Gender:        internal.GenderMale,
		Age:           35,
		WeightKg:      85,
		HeightCm:      178,
		ActivityLevel: internal.ActivityModeratelyActive,
		GoalType:      internal.GoalWeightLoss,
	}
}

// lowTargetProfile lands on the 1200 kcal female floor.
func lowTargetProfile() internal.UserProfile {
	return internal.UserProfile{
		Gender:        internal.GenderFemale,
		Age:           60,
		WeightKg:      45,
		HeightCm:      150,
		ActivityLevel: internal.ActivitySedentary,
		GoalType:      internal.GoalWeightLoss,
	}
}

func ids[T any](items []T, id func(T) int) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

func dietPlanIDs(plans []internal.DietPlan) []int {
	return ids(plans, func(p internal.DietPlan) int { return p.ID })
}

func workoutPlanIDs(plans []internal.WorkoutPlan) []int {
	return ids(plans, func(p internal.WorkoutPlan) int { return p.ID })
}

func recipeIDs(recipes []internal.Recipe) []int {
	return ids(recipes, func(r internal.Recipe) int { return r.ID })
}
