package service

import (
	"sort"

	"github.com/yourname/fitplanner/internal"
)

const MaxRecommendations = 3

// DifficultyForActivity maps how active someone already is to the workout
// difficulty they should start at.
func DifficultyForActivity(level internal.ActivityLevel) internal.Difficulty {
	switch level {
	case internal.ActivityModeratelyActive:
		return internal.DifficultyIntermediate
	case internal.ActivityVeryActive, internal.ActivityExtremelyActive:
		return internal.DifficultyAdvanced
	default:
		return internal.DifficultyBeginner
	}
}

// RecommendDietPlans returns up to three diet plans for the profile's goal,
// closest to its calorie target first. Dietary preferences narrow the set only
// when at least one goal plan matches them.
func RecommendDietPlans(plans []internal.DietPlan, p internal.UserProfile) ([]internal.DietPlan, error) {
	target, err := ComputeCalorieTarget(p)
	if err != nil {
		return nil, err
	}

	var goalPlans []internal.DietPlan
	for _, plan := range plans {
		if plan.GoalType == p.GoalType {
			goalPlans = append(goalPlans, plan)
		}
	}
	if len(goalPlans) == 0 {
		return []internal.DietPlan{}, nil
	}

	candidates := goalPlans
	if len(p.DietaryPreferences) > 0 {
		var preferred []internal.DietPlan
		for _, plan := range goalPlans {
			if containsDiet(p.DietaryPreferences, plan.DietType) {
				preferred = append(preferred, plan)
			}
		}
		if len(preferred) > 0 {
			candidates = preferred
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return calorieDistance(candidates[i], target.TargetCalories) < calorieDistance(candidates[j], target.TargetCalories)
	})
	return truncate(candidates), nil
}

// RecommendWorkoutPlans returns up to three workout plans for the profile's
// goal, preferring the difficulty implied by its activity level.
func RecommendWorkoutPlans(plans []internal.WorkoutPlan, p internal.UserProfile) []internal.WorkoutPlan {
	difficulty := DifficultyForActivity(p.ActivityLevel)

	var goalPlans, matching []internal.WorkoutPlan
	for _, plan := range plans {
		if plan.GoalType != p.GoalType {
			continue
		}
		goalPlans = append(goalPlans, plan)
		if plan.DifficultyLevel == difficulty {
			matching = append(matching, plan)
		}
	}
	if len(goalPlans) == 0 {
		return []internal.WorkoutPlan{}
	}

	candidates := goalPlans
	if len(matching) > 0 {
		candidates = matching
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DifficultyLevel == difficulty && candidates[j].DifficultyLevel != difficulty
	})
	return truncate(candidates)
}

func calorieDistance(plan internal.DietPlan, target int) int {
	d := plan.DailyCalories - target
	if d < 0 {
		return -d
	}
	return d
}

func containsDiet(set []internal.DietType, d internal.DietType) bool {
	for _, s := range set {
		if s == d {
			return true
		}
	}
	return false
}

func truncate[T any](s []T) []T {
	if len(s) > MaxRecommendations {
		return s[:MaxRecommendations]
	}
	return s
}
