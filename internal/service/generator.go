package service

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/yourname/fitplanner/internal"
)

const (
	CustomPlanDays = 7
	// MinEligibleRecipes is the pool size below which ingredient exclusions
	// are dropped rather than leaving most slots empty.
	MinEligibleRecipes = 15
	// SnackCalorieThreshold: a snack slot is added only above this target.
	SnackCalorieThreshold = 1500
)

// RandomSource picks slot recipes. *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// NewRandomSource returns a deterministic PCG source for seed.
func NewRandomSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewUnseededRandomSource returns a source with a random seed.
func NewUnseededRandomSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

var slotOrder = []internal.MealType{
	internal.MealBreakfast,
	internal.MealLunch,
	internal.MealDinner,
	internal.MealSnack,
}

// GenerateCustomPlan builds a seven day plan for the profile from recipes.
// The returned plan has no ID, owner or creation time; the caller assigns
// those. recipes is only read.
func GenerateCustomPlan(p internal.UserProfile, prefs internal.PlanPreferences, recipes []internal.Recipe, rnd RandomSource) (*internal.GeneratedPlan, error) {
	if err := ValidatePreferences(&prefs); err != nil {
		return nil, err
	}
	target, err := ComputeCalorieTarget(p)
	if err != nil {
		return nil, err
	}
	calories := target.TargetCalories
	grams := MacroGramsFor(calories, prefs.DietType)

	pool, relaxed := eligibleRecipes(recipes, prefs)
	byMeal := make(map[internal.MealType][]internal.Recipe, len(slotOrder))
	byID := make(map[int]internal.Recipe, len(pool))
	for _, r := range pool {
		byMeal[r.MealType] = append(byMeal[r.MealType], r)
		byID[r.ID] = r
	}

	plan := &internal.GeneratedPlan{
		Name:              fmt.Sprintf("Custom %s Plan", dietLabel(prefs.DietType)),
		Description:       fmt.Sprintf("A custom %s diet plan designed for %s.", prefs.DietType, strings.ReplaceAll(string(p.GoalType), "_", " ")),
		GoalType:          p.GoalType,
		DietType:          prefs.DietType,
		DurationDays:      CustomPlanDays,
		DailyCalories:     calories,
		DailyProtein:      grams.ProteinG,
		DailyCarbs:        grams.CarbsG,
		DailyFat:          grams.FatG,
		IsCustom:          true,
		ExclusionsRelaxed: relaxed,
		Days:              make([]internal.PlanDay, 0, CustomPlanDays),
	}

	for day := 1; day <= CustomPlanDays; day++ {
		pd := internal.PlanDay{
			DayNumber:   day,
			Description: fmt.Sprintf("Day %d of your custom plan", day),
			Slots:       []internal.MealSlot{},
		}
		for i, meal := range slotOrder {
			if meal == internal.MealSnack && calories <= SnackCalorieThreshold {
				continue
			}
			candidates := byMeal[meal]
			if len(candidates) == 0 {
				continue
			}
			r := candidates[rnd.IntN(len(candidates))]
			pd.Slots = append(pd.Slots, internal.MealSlot{
				MealType:   meal,
				RecipeID:   r.ID,
				Servings:   1,
				OrderIndex: i + 1,
			})
		}
		addDayTotals(&pd, byID)
		plan.Days = append(plan.Days, pd)
	}
	return plan, nil
}

// eligibleRecipes returns the recipes tagged with the diet type that avoid the
// excluded ingredients. When that leaves fewer than MinEligibleRecipes the
// exclusions are ignored and relaxed reports whether any were given.
func eligibleRecipes(recipes []internal.Recipe, prefs internal.PlanPreferences) (pool []internal.Recipe, relaxed bool) {
	excluded := normalizeExclusions(prefs.ExcludedIngredients)

	var tagged []internal.Recipe
	for _, r := range recipes {
		if !r.HasDietType(prefs.DietType) {
			continue
		}
		tagged = append(tagged, r)
		if !containsExcluded(r, excluded) {
			pool = append(pool, r)
		}
	}
	if len(pool) < MinEligibleRecipes {
		return tagged, len(excluded) > 0
	}
	return pool, false
}

func normalizeExclusions(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsExcluded(r internal.Recipe, excluded []string) bool {
	for _, ing := range r.Ingredients {
		name := strings.ToLower(ing.Name)
		for _, ex := range excluded {
			if strings.Contains(name, ex) {
				return true
			}
		}
	}
	return false
}

func addDayTotals(pd *internal.PlanDay, byID map[int]internal.Recipe) {
	for _, s := range pd.Slots {
		r := byID[s.RecipeID]
		servings := float64(s.Servings)
		pd.Calories += r.Calories * servings
		pd.Protein += r.Protein * servings
		pd.Carbs += r.Carbs * servings
		pd.Fat += r.Fat * servings
	}
}

// dietLabel upper-cases the first letter only, so "low_carb" becomes
// "Low_carb". Saved plan names depend on this exact form.
func dietLabel(d internal.DietType) string {
	s := string(d)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
