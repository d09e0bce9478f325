package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/fitplanner/internal"
)

func TestComputeCalorieTarget_WeightLoss(t *testing.T) {
	plan, err := ComputeCalorieTarget(exampleProfile())
	require.NoError(t, err)
	assert.InDelta(t, 1792.5, plan.BMR, 1e-9)
	assert.InDelta(t, 2778.375, plan.TDEE, 1e-9)
	assert.Equal(t, 2278, plan.TargetCalories)
	assert.Equal(t, 142, plan.ProteinG)
	assert.Equal(t, 285, plan.CarbsG)
	assert.Equal(t, 63, plan.FatG)
}

func TestComputeCalorieTarget_MuscleGain(t *testing.T) {
	p := internal.UserProfile{
		Gender:        internal.GenderFemale,
		Age:           30,
		WeightKg:      60,
		HeightCm:      165,
		ActivityLevel: internal.ActivityLightlyActive,
		GoalType:      internal.GoalMuscleGain,
	}
	plan, err := ComputeCalorieTarget(p)
	require.NoError(t, err)
	assert.InDelta(t, 1320.25, plan.BMR, 1e-9)
	assert.Equal(t, 2115, plan.TargetCalories)
}

func TestComputeCalorieTarget_Maintenance(t *testing.T) {
	p := exampleProfile()
	p.GoalType = internal.GoalMaintenance
	plan, err := ComputeCalorieTarget(p)
	require.NoError(t, err)
	assert.Equal(t, 2778, plan.TargetCalories)

	p.GoalType = "toning"
	plan, err = ComputeCalorieTarget(p)
	require.NoError(t, err)
	assert.Equal(t, 2778, plan.TargetCalories, "unknown goals keep TDEE")
}

func TestComputeCalorieTarget_Floors(t *testing.T) {
	plan, err := ComputeCalorieTarget(lowTargetProfile())
	require.NoError(t, err)
	assert.Equal(t, 1200, plan.TargetCalories)

	male := internal.UserProfile{
		Gender:        internal.GenderMale,
		Age:           70,
		WeightKg:      50,
		HeightCm:      160,
		ActivityLevel: internal.ActivitySedentary,
		GoalType:      internal.GoalWeightLoss,
	}
	plan, err = ComputeCalorieTarget(male)
	require.NoError(t, err)
	assert.InDelta(t, 1155, plan.BMR, 1e-9)
	assert.Equal(t, 1500, plan.TargetCalories)
}

func TestComputeCalorieTarget_UnknownActivityIsSedentary(t *testing.T) {
	p := exampleProfile()
	p.ActivityLevel = "couch"
	plan, err := ComputeCalorieTarget(p)
	require.NoError(t, err)
	assert.InDelta(t, 1792.5*1.2, plan.TDEE, 1e-9)
}

func TestComputeCalorieTarget_InvalidProfile(t *testing.T) {
	cases := map[string]func(*internal.UserProfile){
		"zero age":        func(p *internal.UserProfile) { p.Age = 0 },
		"ancient":         func(p *internal.UserProfile) { p.Age = 200 },
		"no weight":       func(p *internal.UserProfile) { p.WeightKg = 0 },
		"negative height": func(p *internal.UserProfile) { p.HeightCm = -10 },
		"bad gender":      func(p *internal.UserProfile) { p.Gender = "robot" },
		"missing gender":  func(p *internal.UserProfile) { p.Gender = "" },
		"huge weight":     func(p *internal.UserProfile) { p.WeightKg = 1e18 },
		"max float":       func(p *internal.UserProfile) { p.WeightKg = math.MaxFloat64 },
		"huge height":     func(p *internal.UserProfile) { p.HeightCm = 1000 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := exampleProfile()
			mutate(&p)
			_, err := ComputeCalorieTarget(p)
			assert.ErrorIs(t, err, internal.ErrInvalidProfile)
		})
	}
}

func TestComputeCalorieTarget_UpperBounds(t *testing.T) {
	p := exampleProfile()
	p.WeightKg = 500
	p.HeightCm = 300
	p.ActivityLevel = internal.ActivityExtremelyActive
	p.GoalType = internal.GoalMuscleGain
	plan, err := ComputeCalorieTarget(p)
	require.NoError(t, err)
	assert.InDelta(t, 13040, plan.TargetCalories, 1)
	assert.Positive(t, plan.FatG)

	p.WeightKg = 500.5
	_, err = ComputeCalorieTarget(p)
	assert.ErrorIs(t, err, internal.ErrInvalidProfile)
}

func TestTargetNeverBelowFloor(t *testing.T) {
	for _, g := range []internal.Gender{internal.GenderMale, internal.GenderFemale} {
		for age := 20; age <= 90; age += 10 {
			for weight := 40.0; weight <= 140; weight += 20 {
				p := internal.UserProfile{
					Gender:        g,
					Age:           age,
					WeightKg:      weight,
					HeightCm:      150,
					ActivityLevel: internal.ActivitySedentary,
					GoalType:      internal.GoalWeightLoss,
				}
				plan, err := ComputeCalorieTarget(p)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, plan.TargetCalories, GenderFloor(g))
			}
		}
	}
}
