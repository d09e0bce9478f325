package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yourname/fitplanner/internal"
	"github.com/yourname/fitplanner/internal/storage"
	"golang.org/x/sync/errgroup"
)

func FindRecipe(recipes []internal.Recipe, id int) (internal.Recipe, error) {
	for _, r := range recipes {
		if r.ID == id {
			return r, nil
		}
	}
	return internal.Recipe{}, fmt.Errorf("recipe %d: %w", id, internal.ErrNotFound)
}

func FindExercise(exercises []internal.Exercise, id int) (internal.Exercise, error) {
	for _, e := range exercises {
		if e.ID == id {
			return e, nil
		}
	}
	return internal.Exercise{}, fmt.Errorf("exercise %d: %w", id, internal.ErrNotFound)
}

func FindFood(foods []internal.Food, id string) (internal.Food, error) {
	for _, f := range foods {
		if f.ID == id {
			return f, nil
		}
	}
	return internal.Food{}, fmt.Errorf("food %s: %w", id, internal.ErrNotFound)
}

// ExercisesInCategory keeps exercises of categoryID; 0 keeps all of them.
func ExercisesInCategory(exercises []internal.Exercise, categoryID int) []internal.Exercise {
	out := []internal.Exercise{}
	for _, e := range exercises {
		if categoryID == 0 || e.CategoryID == categoryID {
			out = append(out, e)
		}
	}
	return out
}

// SearchFoods matches query case-insensitively against name and brand. An
// empty query matches nothing.
func SearchFoods(foods []internal.Food, query string) []internal.Food {
	out := []internal.Food{}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return out
	}
	for _, f := range foods {
		if strings.Contains(strings.ToLower(f.Name), q) || strings.Contains(strings.ToLower(f.Brand), q) {
			out = append(out, f)
		}
	}
	return out
}

// BuildDietPlanDetails expands plan with its days, ordered by day number, and
// each day's recipes in serving order. Entries pointing at unknown recipes
// are dropped.
func BuildDietPlanDetails(plan internal.DietPlan, mealPlans []internal.MealPlan, recipes []internal.Recipe) *internal.DietPlanDetails {
	byID := make(map[int]internal.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}

	details := &internal.DietPlanDetails{DietPlan: plan, MealPlans: []internal.MealPlanDetails{}}
	for _, mp := range mealPlans {
		if mp.DietPlanID != plan.ID {
			continue
		}
		day := internal.MealPlanDetails{
			ID:          mp.ID,
			DayNumber:   mp.DayNumber,
			Description: mp.Description,
			Recipes:     []internal.ScheduledRecipe{},
		}
		for _, entry := range mp.Recipes {
			r, ok := byID[entry.RecipeID]
			if !ok {
				continue
			}
			day.Recipes = append(day.Recipes, internal.ScheduledRecipe{Recipe: r, Servings: entry.Servings, OrderIndex: entry.OrderIndex})
		}
		sort.SliceStable(day.Recipes, func(i, j int) bool {
			return day.Recipes[i].OrderIndex < day.Recipes[j].OrderIndex
		})
		details.MealPlans = append(details.MealPlans, day)
	}
	sort.SliceStable(details.MealPlans, func(i, j int) bool {
		return details.MealPlans[i].DayNumber < details.MealPlans[j].DayNumber
	})
	return details
}

// BuildWorkoutPlanDetails is BuildDietPlanDetails for workout plans.
func BuildWorkoutPlanDetails(plan internal.WorkoutPlan, days []internal.WorkoutDay, exercises []internal.Exercise) *internal.WorkoutPlanDetails {
	byID := make(map[int]internal.Exercise, len(exercises))
	for _, e := range exercises {
		byID[e.ID] = e
	}

	details := &internal.WorkoutPlanDetails{WorkoutPlan: plan, Days: []internal.WorkoutDayDetails{}}
	for _, d := range days {
		if d.WorkoutPlanID != plan.ID {
			continue
		}
		day := internal.WorkoutDayDetails{
			ID:        d.ID,
			DayNumber: d.DayNumber,
			FocusArea: d.FocusArea,
			Exercises: []internal.ScheduledExercise{},
		}
		for _, we := range d.Exercises {
			e, ok := byID[we.ExerciseID]
			if !ok {
				continue
			}
			day.Exercises = append(day.Exercises, internal.ScheduledExercise{Exercise: e, WorkoutExercise: we})
		}
		sort.SliceStable(day.Exercises, func(i, j int) bool {
			return day.Exercises[i].OrderIndex < day.Exercises[j].OrderIndex
		})
		details.Days = append(details.Days, day)
	}
	sort.SliceStable(details.Days, func(i, j int) bool {
		return details.Days[i].DayNumber < details.Days[j].DayNumber
	})
	return details
}

func GetRecipe(ctx context.Context, catalog storage.CatalogRepository, id int) (internal.Recipe, error) {
	recipes, err := catalog.ListRecipes(ctx)
	if err != nil {
		return internal.Recipe{}, fmt.Errorf("list recipes: %w", err)
	}
	return FindRecipe(recipes, id)
}

func GetExercise(ctx context.Context, catalog storage.CatalogRepository, id int) (internal.Exercise, error) {
	exercises, err := catalog.ListExercises(ctx)
	if err != nil {
		return internal.Exercise{}, fmt.Errorf("list exercises: %w", err)
	}
	return FindExercise(exercises, id)
}

func GetFood(ctx context.Context, catalog storage.CatalogRepository, id string) (internal.Food, error) {
	foods, err := catalog.ListFoods(ctx)
	if err != nil {
		return internal.Food{}, fmt.Errorf("list foods: %w", err)
	}
	return FindFood(foods, id)
}

// GetDietPlanDetails reads the plan, its days and the recipes concurrently.
func GetDietPlanDetails(ctx context.Context, catalog storage.CatalogRepository, id int) (*internal.DietPlanDetails, error) {
	var (
		plans     []internal.DietPlan
		mealPlans []internal.MealPlan
		recipes   []internal.Recipe
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		plans, err = catalog.ListDietPlans(gctx)
		return err
	})
	g.Go(func() (err error) {
		mealPlans, err = catalog.ListMealPlans(gctx)
		return err
	})
	g.Go(func() (err error) {
		recipes, err = catalog.ListRecipes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load diet plan %d: %w", id, err)
	}

	for _, p := range plans {
		if p.ID == id {
			return BuildDietPlanDetails(p, mealPlans, recipes), nil
		}
	}
	return nil, fmt.Errorf("diet plan %d: %w", id, internal.ErrNotFound)
}

func GetWorkoutPlanDetails(ctx context.Context, catalog storage.CatalogRepository, id int) (*internal.WorkoutPlanDetails, error) {
	var (
		plans     []internal.WorkoutPlan
		days      []internal.WorkoutDay
		exercises []internal.Exercise
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		plans, err = catalog.ListWorkoutPlans(gctx)
		return err
	})
	g.Go(func() (err error) {
		days, err = catalog.ListWorkoutDays(gctx)
		return err
	})
	g.Go(func() (err error) {
		exercises, err = catalog.ListExercises(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load workout plan %d: %w", id, err)
	}

	for _, p := range plans {
		if p.ID == id {
			return BuildWorkoutPlanDetails(p, days, exercises), nil
		}
	}
	return nil, fmt.Errorf("workout plan %d: %w", id, internal.ErrNotFound)
}
