package storage

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yourname/fitplanner/internal"
	"golang.org/x/sync/errgroup"
)

//go:embed seed/catalog.json
var seedCatalogJSON []byte

// Catalog is the on-disk and over-the-wire shape of a catalog snapshot.
type Catalog struct {
	DietTypes          []internal.DietTypeInfo     `json:"diet_types"`
	Recipes            []internal.Recipe           `json:"recipes"`
	DietPlans          []internal.DietPlan         `json:"diet_plans"`
	MealPlans          []internal.MealPlan         `json:"meal_plans"`
	WorkoutPlans       []internal.WorkoutPlan      `json:"workout_plans"`
	WorkoutDays        []internal.WorkoutDay       `json:"workout_days"`
	ExerciseCategories []internal.ExerciseCategory `json:"exercise_categories"`
	Exercises          []internal.Exercise         `json:"exercises"`
	Foods              []internal.Food             `json:"foods"`
}

func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("storage: decode catalog: %w", err)
	}
	return &c, nil
}

// SeedCatalog returns a fresh copy of the built-in catalog.
func SeedCatalog() (*Catalog, error) {
	return DecodeCatalog(bytes.NewReader(seedCatalogJSON))
}

// LoadSnapshot reads every catalog collection from repo concurrently.
func LoadSnapshot(ctx context.Context, repo CatalogRepository) (*Catalog, error) {
	var c Catalog
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		c.DietTypes, err = repo.ListDietTypes(ctx)
		return err
	})
	g.Go(func() (err error) {
		c.Recipes, err = repo.ListRecipes(ctx)
		return err
	})
	g.Go(func() (err error) {
		c.DietPlans, err = repo.ListDietPlans(ctx)
		return err
	})
	g.Go(func() (err error) {
		c.MealPlans, err = repo.ListMealPlans(ctx)
		return err
	})
	g.Go(func() (err error) {
		c.WorkoutPlans, err = repo.ListWorkoutPlans(ctx)
		return err
	})
	g.Go(func() (err error) {
		c.WorkoutDays, err = repo.ListWorkoutDays(ctx)
		return err
	})
	g.Go(func() (err error) {
		c.ExerciseCategories, err = repo.ListExerciseCategories(ctx)
		return err
	})
	g.Go(func() (err error) {
		c.Exercises, err = repo.ListExercises(ctx)
		return err
	})
	g.Go(func() (err error) {
		c.Foods, err = repo.ListFoods(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("storage: load catalog snapshot: %w", err)
	}
	return &c, nil
}
