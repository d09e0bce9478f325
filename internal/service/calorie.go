package service

import (
	"fmt"
	"math"

	"github.com/yourname/fitplanner/internal"
)

const (
	weightLossDeficit  = 500
	muscleGainSurplus  = 300
	weightLossMinimum  = 1200
	femaleCalorieFloor = 1200
	maleCalorieFloor   = 1500
	maxCalorieTarget   = 20000
)

var activityMultipliers = map[internal.ActivityLevel]float64{
	internal.ActivitySedentary:        1.2,
	internal.ActivityLightlyActive:    1.375,
	internal.ActivityModeratelyActive: 1.55,
	internal.ActivityVeryActive:       1.725,
	internal.ActivityExtremelyActive:  1.9,
}

// ActivityMultiplier returns the TDEE multiplier for level. Unknown levels
// count as sedentary.
func ActivityMultiplier(level internal.ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return activityMultipliers[internal.ActivitySedentary]
}

// BMR is the Mifflin-St Jeor basal metabolic rate. Anything other than male
// uses the female constant.
func BMR(p internal.UserProfile) float64 {
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Gender == internal.GenderMale {
		return bmr + 5
	}
	return bmr - 161
}

// GenderFloor is the lowest daily target ever recommended.
func GenderFloor(g internal.Gender) int {
	if g == internal.GenderMale {
		return maleCalorieFloor
	}
	return femaleCalorieFloor
}

// ComputeCalorieTarget derives BMR, TDEE and the goal-adjusted daily calorie
// target for p. Macro grams use the balanced split; callers that know the
// diet type should use MacroGramsFor on TargetCalories instead.
func ComputeCalorieTarget(p internal.UserProfile) (internal.CaloriePlan, error) {
	if err := ValidateProfile(&p); err != nil {
		return internal.CaloriePlan{}, err
	}

	bmr := BMR(p)
	tdee := bmr * ActivityMultiplier(p.ActivityLevel)

	goal := tdee
	switch p.GoalType {
	case internal.GoalWeightLoss:
		goal = math.Max(weightLossMinimum, tdee-weightLossDeficit)
	case internal.GoalMuscleGain:
		goal = tdee + muscleGainSurplus
	}

	if math.IsNaN(goal) || math.IsInf(goal, 0) || goal > maxCalorieTarget {
		return internal.CaloriePlan{}, fmt.Errorf("%w: calorie target %.0f out of range", internal.ErrInvalidProfile, goal)
	}
	target := int(math.Round(goal))
	if floor := GenderFloor(p.Gender); target < floor {
		target = floor
	}

	grams := MacroGramsFor(target, DefaultDietType)
	return internal.CaloriePlan{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: target,
		ProteinG:       grams.ProteinG,
		CarbsG:         grams.CarbsG,
		FatG:           grams.FatG,
	}, nil
}
