package service

import (
	"math"

	"github.com/yourname/fitplanner/internal"
)

const (
	proteinKcalPerGram = 4
	carbsKcalPerGram   = 4
	fatKcalPerGram     = 9
)

const DefaultDietType = internal.DietBalanced

// MacroSplit is the share of daily calories from each macronutrient.
type MacroSplit struct {
	Protein float64 `json:"protein_pct"`
	Carbs   float64 `json:"carbs_pct"`
	Fat     float64 `json:"fat_pct"`
}

func (s MacroSplit) Sum() float64 { return s.Protein + s.Carbs + s.Fat }

type MacroGrams struct {
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

// Calories converts the grams back to kcal. It drifts from the original
// target by the rounding of each macro.
func (g MacroGrams) Calories() int {
	return g.ProteinG*proteinKcalPerGram + g.CarbsG*carbsKcalPerGram + g.FatG*fatKcalPerGram
}

var macroSplits = map[internal.DietType]MacroSplit{
	internal.DietKeto:        {Protein: 0.25, Carbs: 0.05, Fat: 0.70},
	internal.DietLowCarb:     {Protein: 0.30, Carbs: 0.20, Fat: 0.50},
	internal.DietHighProtein: {Protein: 0.40, Carbs: 0.30, Fat: 0.30},
	internal.DietVegan:       {Protein: 0.20, Carbs: 0.55, Fat: 0.25},
	internal.DietVegetarian:  {Protein: 0.20, Carbs: 0.55, Fat: 0.25},
	internal.DietBalanced:    {Protein: 0.25, Carbs: 0.50, Fat: 0.25},
}

// MacroSplitFor looks up the split for a diet type, falling back to balanced.
func MacroSplitFor(d internal.DietType) MacroSplit {
	if s, ok := macroSplits[d]; ok {
		return s
	}
	return macroSplits[DefaultDietType]
}

func GramsFromCalories(targetCalories int, pct, kcalPerGram float64) int {
	return int(math.Round(float64(targetCalories) * pct / kcalPerGram))
}

func MacroGramsFor(targetCalories int, d internal.DietType) MacroGrams {
	s := MacroSplitFor(d)
	return MacroGrams{
		ProteinG: GramsFromCalories(targetCalories, s.Protein, proteinKcalPerGram),
		CarbsG:   GramsFromCalories(targetCalories, s.Carbs, carbsKcalPerGram),
		FatG:     GramsFromCalories(targetCalories, s.Fat, fatKcalPerGram),
	}
}
