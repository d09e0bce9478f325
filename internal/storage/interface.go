package storage

import (
	"context"

	"github.com/yourname/fitplanner/internal"
)

// CatalogRepository is a read-only view of the recipe and plan catalog.
type CatalogRepository interface {
	ListDietTypes(ctx context.Context) ([]internal.DietTypeInfo, error)
	ListRecipes(ctx context.Context) ([]internal.Recipe, error)
	ListDietPlans(ctx context.Context) ([]internal.DietPlan, error)
	ListWorkoutPlans(ctx context.Context) ([]internal.WorkoutPlan, error)
	// ListMealPlans returns the days of every diet plan.
	ListMealPlans(ctx context.Context) ([]internal.MealPlan, error)
	ListExerciseCategories(ctx context.Context) ([]internal.ExerciseCategory, error)
	ListExercises(ctx context.Context) ([]internal.Exercise, error)
	// ListWorkoutDays returns the days of every workout plan.
	ListWorkoutDays(ctx context.Context) ([]internal.WorkoutDay, error)
	ListFoods(ctx context.Context) ([]internal.Food, error)
}

// PlanRepository stores generated custom plans.
type PlanRepository interface {
	SavePlan(ctx context.Context, plan *internal.GeneratedPlan) error
	GetPlan(ctx context.Context, id string) (*internal.GeneratedPlan, error)
	// ListPlans returns the user's plans, newest first.
	ListPlans(ctx context.Context, userID string) ([]internal.GeneratedPlan, error)
}
