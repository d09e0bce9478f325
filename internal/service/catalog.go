package service

import (
	"fmt"
	"strings"

	"github.com/yourname/fitplanner/internal"
)

const filterAll = "all"

func matchesFilter(value, filter string) bool {
	return filter == "" || filter == filterAll || value == filter
}

// FilterDietPlans keeps plans matching goal and diet type; "" or "all" match anything.
func FilterDietPlans(plans []internal.DietPlan, goal, dietType string) []internal.DietPlan {
	out := []internal.DietPlan{}
	for _, p := range plans {
		if matchesFilter(string(p.GoalType), goal) && matchesFilter(string(p.DietType), dietType) {
			out = append(out, p)
		}
	}
	return out
}

func FilterWorkoutPlans(plans []internal.WorkoutPlan, goal, difficulty string) []internal.WorkoutPlan {
	out := []internal.WorkoutPlan{}
	for _, p := range plans {
		if matchesFilter(string(p.GoalType), goal) && matchesFilter(string(p.DifficultyLevel), difficulty) {
			out = append(out, p)
		}
	}
	return out
}

func FilterRecipes(recipes []internal.Recipe, dietType, mealType string) []internal.Recipe {
	out := []internal.Recipe{}
	for _, r := range recipes {
		if dietType != "" && dietType != filterAll && !r.HasDietType(internal.DietType(dietType)) {
			continue
		}
		if !matchesFilter(string(r.MealType), mealType) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SearchRecipes matches query case-insensitively against name, description
// and ingredient names. An empty query matches nothing.
func SearchRecipes(recipes []internal.Recipe, query string) []internal.Recipe {
	out := []internal.Recipe{}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return out
	}
	for _, r := range recipes {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Description), q) {
			out = append(out, r)
			continue
		}
		for _, ing := range r.Ingredients {
			if strings.Contains(strings.ToLower(ing.Name), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// SummarizeMeals totals a day of logged meals. A positive goal also fills in
// the remaining calories, which go negative once the goal is exceeded.
func SummarizeMeals(meals []internal.MealEntry, goal int) (internal.DailySummary, error) {
	for i := range meals {
		if err := validate.Struct(&meals[i]); err != nil {
			return internal.DailySummary{}, fmt.Errorf("meal %d: %w", i, err)
		}
	}

	summary := internal.DailySummary{Meals: map[internal.MealType]internal.MacroTotals{}}
	for _, m := range meals {
		totals := summary.Meals[m.MealType]
		for _, f := range m.Foods {
			totals.Calories += f.Calories * f.Servings
			totals.Protein += f.Protein * f.Servings
			totals.Carbs += f.Carbs * f.Servings
			totals.Fat += f.Fat * f.Servings
		}
		summary.Meals[m.MealType] = totals
	}
	for _, t := range summary.Meals {
		summary.Total.Calories += t.Calories
		summary.Total.Protein += t.Protein
		summary.Total.Carbs += t.Carbs
		summary.Total.Fat += t.Fat
	}
	if goal > 0 {
		remaining := goal - int(summary.Total.Calories+0.5)
		summary.Goal = &goal
		summary.Remaining = &remaining
	}
	return summary, nil
}

type MealSummaryRequest struct {
	Profile *internal.UserProfile `json:"profile,omitempty"`
	Goal    int                   `json:"goal,omitempty"`
	Meals   []internal.MealEntry  `json:"meals"`
}

// SummarizeDay totals req.Meals against an explicit goal, or against the
// profile's calorie target when a profile is given.
func SummarizeDay(req *MealSummaryRequest) (internal.DailySummary, error) {
	goal := req.Goal
	if req.Profile != nil {
		target, err := ComputeCalorieTarget(*req.Profile)
		if err != nil {
			return internal.DailySummary{}, err
		}
		goal = target.TargetCalories
	}
	return SummarizeMeals(req.Meals, goal)
}
