package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yourname/fitplanner/internal"
)

// MemoryCatalog serves a fixed catalog snapshot. Callers get copies, so the
// snapshot can't be changed through it.
type MemoryCatalog struct {
	mu      sync.RWMutex
	catalog Catalog
}

func NewMemoryCatalog(c *Catalog) *MemoryCatalog {
	m := &MemoryCatalog{}
	m.Replace(c)
	return m
}

// Replace swaps in a new snapshot.
func (m *MemoryCatalog) Replace(c *Catalog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c == nil {
		m.catalog = Catalog{}
		return
	}
	m.catalog = *c
}

func (m *MemoryCatalog) ListDietTypes(ctx context.Context) ([]internal.DietTypeInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]internal.DietTypeInfo{}, m.catalog.DietTypes...), nil
}

func (m *MemoryCatalog) ListRecipes(ctx context.Context) ([]internal.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]internal.Recipe, len(m.catalog.Recipes))
	for i, r := range m.catalog.Recipes {
		r.DietTypes = append([]internal.DietType{}, r.DietTypes...)
		r.Ingredients = append([]internal.Ingredient{}, r.Ingredients...)
		out[i] = r
	}
	return out, nil
}

func (m *MemoryCatalog) ListDietPlans(ctx context.Context) ([]internal.DietPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]internal.DietPlan{}, m.catalog.DietPlans...), nil
}

func (m *MemoryCatalog) ListWorkoutPlans(ctx context.Context) ([]internal.WorkoutPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]internal.WorkoutPlan{}, m.catalog.WorkoutPlans...), nil
}

func (m *MemoryCatalog) ListMealPlans(ctx context.Context) ([]internal.MealPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]internal.MealPlan, len(m.catalog.MealPlans))
	for i, mp := range m.catalog.MealPlans {
		mp.Recipes = append([]internal.MealPlanRecipe{}, mp.Recipes...)
		out[i] = mp
	}
	return out, nil
}

func (m *MemoryCatalog) ListExerciseCategories(ctx context.Context) ([]internal.ExerciseCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]internal.ExerciseCategory{}, m.catalog.ExerciseCategories...), nil
}

func (m *MemoryCatalog) ListExercises(ctx context.Context) ([]internal.Exercise, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]internal.Exercise{}, m.catalog.Exercises...), nil
}

func (m *MemoryCatalog) ListWorkoutDays(ctx context.Context) ([]internal.WorkoutDay, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]internal.WorkoutDay, len(m.catalog.WorkoutDays))
	for i, d := range m.catalog.WorkoutDays {
		d.Exercises = append([]internal.WorkoutExercise{}, d.Exercises...)
		out[i] = d
	}
	return out, nil
}

func (m *MemoryCatalog) ListFoods(ctx context.Context) ([]internal.Food, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]internal.Food{}, m.catalog.Foods...), nil
}

// MemoryPlanStore keeps generated plans in process memory.
type MemoryPlanStore struct {
	mu    sync.RWMutex
	plans map[string]internal.GeneratedPlan
}

func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{plans: make(map[string]internal.GeneratedPlan)}
}

func (m *MemoryPlanStore) SavePlan(ctx context.Context, plan *internal.GeneratedPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[plan.ID] = *plan
	return nil
}

func (m *MemoryPlanStore) GetPlan(ctx context.Context, id string) (*internal.GeneratedPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.plans[id]
	if !ok {
		return nil, fmt.Errorf("storage: plan %s: %w", id, internal.ErrNotFound)
	}
	return &p, nil
}

func (m *MemoryPlanStore) ListPlans(ctx context.Context, userID string) ([]internal.GeneratedPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []internal.GeneratedPlan{}
	for _, p := range m.plans {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(plans []internal.GeneratedPlan) {
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].CreatedAt.After(plans[j].CreatedAt)
	})
}

var _ CatalogRepository = (*MemoryCatalog)(nil)
var _ PlanRepository = (*MemoryPlanStore)(nil)
