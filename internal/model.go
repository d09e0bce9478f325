package internal

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityExtremelyActive  ActivityLevel = "extremely_active"
)

type GoalType string

const (
	GoalWeightLoss  GoalType = "weight_loss"
	GoalMuscleGain  GoalType = "muscle_gain"
	GoalMaintenance GoalType = "maintenance"
)

type DietType string

const (
	DietBalanced      DietType = "balanced"
	DietLowCarb       DietType = "low_carb"
	DietHighProtein   DietType = "high_protein"
	DietKeto          DietType = "keto"
	DietVegetarian    DietType = "vegetarian"
	DietVegan         DietType = "vegan"
	DietPaleo         DietType = "paleo"
	DietMediterranean DietType = "mediterranean"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

type User struct {
	ID    string `json:"id"`
	Token string `json:"token,omitempty"`
	Name  string `json:"name"`
}

// UserProfile is the input to every calculation. It is never mutated.
type UserProfile struct {
	Gender             Gender        `json:"gender" validate:"required,oneof=male female"`
	Age                int           `json:"age" validate:"gt=0,lte=130"`
	WeightKg           float64       `json:"weight_kg" validate:"gt=0,lte=500"`
	HeightCm           float64       `json:"height_cm" validate:"gt=0,lte=300"`
	ActivityLevel      ActivityLevel `json:"activity_level"`
	GoalType           GoalType      `json:"goal_type"`
	DietaryPreferences []DietType    `json:"dietary_preferences,omitempty"`
}

type CaloriePlan struct {
	BMR            float64 `json:"bmr"`
	TDEE           float64 `json:"tdee"`
	TargetCalories int     `json:"target_calories"`
	ProteinG       int     `json:"protein_g"`
	CarbsG         int     `json:"carbs_g"`
	FatG           int     `json:"fat_g"`
}

type DietTypeInfo struct {
	ID          DietType `json:"id" bson:"id"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description" bson:"description"`
}

type Ingredient struct {
	Name     string  `json:"name" bson:"name"`
	Amount   float64 `json:"amount" bson:"amount"`
	Unit     string  `json:"unit" bson:"unit"`
	Optional bool    `json:"optional,omitempty" bson:"optional"`
}

type Recipe struct {
	ID              int          `json:"id" bson:"id"`
	Name            string       `json:"name" bson:"name"`
	Description     string       `json:"description" bson:"description"`
	MealType        MealType     `json:"meal_type" bson:"meal_type"`
	DietTypes       []DietType   `json:"diet_types" bson:"diet_types"`
	PrepTimeMinutes int          `json:"prep_time_minutes" bson:"prep_time_minutes"`
	CookTimeMinutes int          `json:"cook_time_minutes" bson:"cook_time_minutes"`
	Servings        int          `json:"servings" bson:"servings"`
	Calories        float64      `json:"calories" bson:"calories"`
	Protein         float64      `json:"protein" bson:"protein"`
	Carbs           float64      `json:"carbs" bson:"carbs"`
	Fat             float64      `json:"fat" bson:"fat"`
	Fiber           float64      `json:"fiber" bson:"fiber"`
	Ingredients     []Ingredient `json:"ingredients" bson:"ingredients"`
}

// HasDietType reports whether the recipe is tagged with d.
func (r Recipe) HasDietType(d DietType) bool {
	for _, t := range r.DietTypes {
		if t == d {
			return true
		}
	}
	return false
}

type DietPlan struct {
	ID            int      `json:"id" bson:"id"`
	Name          string   `json:"name" bson:"name"`
	Description   string   `json:"description" bson:"description"`
	GoalType      GoalType `json:"goal_type" bson:"goal_type"`
	DietType      DietType `json:"diet_type" bson:"diet_type"`
	DurationDays  int      `json:"duration_days" bson:"duration_days"`
	DailyCalories int      `json:"daily_calories" bson:"daily_calories"`
	DailyProtein  int      `json:"daily_protein" bson:"daily_protein"`
	DailyCarbs    int      `json:"daily_carbs" bson:"daily_carbs"`
	DailyFat      int      `json:"daily_fat" bson:"daily_fat"`
}

type WorkoutPlan struct {
	ID              int        `json:"id" bson:"id"`
	Name            string     `json:"name" bson:"name"`
	Description     string     `json:"description" bson:"description"`
	GoalType        GoalType   `json:"goal_type" bson:"goal_type"`
	DifficultyLevel Difficulty `json:"difficulty_level" bson:"difficulty_level"`
	DurationWeeks   int        `json:"duration_weeks" bson:"duration_weeks"`
	DaysPerWeek     int        `json:"days_per_week" bson:"days_per_week"`
}

type ExerciseCategory struct {
	ID          int    `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
}

type Exercise struct {
	ID                int        `json:"id" bson:"id"`
	CategoryID        int        `json:"category_id" bson:"category_id"`
	Name              string     `json:"name" bson:"name"`
	Description       string     `json:"description" bson:"description"`
	DifficultyLevel   Difficulty `json:"difficulty_level" bson:"difficulty_level"`
	MuscleGroup       string     `json:"muscle_group" bson:"muscle_group"`
	EquipmentNeeded   string     `json:"equipment_needed" bson:"equipment_needed"`
	Instructions      string     `json:"instructions" bson:"instructions"`
	VideoURL          string     `json:"video_url,omitempty" bson:"video_url"`
	CaloriesPerMinute float64    `json:"calories_per_minute" bson:"calories_per_minute"`
}

// WorkoutExercise prescribes one exercise on a workout day. Zero sets, reps
// or duration mean the prescription doesn't use that measure.
type WorkoutExercise struct {
	ExerciseID      int    `json:"exercise_id" bson:"exercise_id"`
	Sets            int    `json:"sets,omitempty" bson:"sets"`
	Reps            int    `json:"reps,omitempty" bson:"reps"`
	DurationMinutes int    `json:"duration_minutes,omitempty" bson:"duration_minutes"`
	RestSeconds     int    `json:"rest_seconds,omitempty" bson:"rest_seconds"`
	Notes           string `json:"notes,omitempty" bson:"notes"`
	OrderIndex      int    `json:"order_index" bson:"order_index"`
}

type WorkoutDay struct {
	ID            int               `json:"id" bson:"id"`
	WorkoutPlanID int               `json:"workout_plan_id" bson:"workout_plan_id"`
	DayNumber     int               `json:"day_number" bson:"day_number"`
	FocusArea     string            `json:"focus_area" bson:"focus_area"`
	Exercises     []WorkoutExercise `json:"exercises" bson:"exercises"`
}

type MealPlanRecipe struct {
	RecipeID   int     `json:"recipe_id" bson:"recipe_id"`
	Servings   float64 `json:"servings" bson:"servings"`
	OrderIndex int     `json:"order_index" bson:"order_index"`
}

// MealPlan is one day of a catalog diet plan.
type MealPlan struct {
	ID          int              `json:"id" bson:"id"`
	DietPlanID  int              `json:"diet_plan_id" bson:"diet_plan_id"`
	DayNumber   int              `json:"day_number" bson:"day_number"`
	Description string           `json:"description" bson:"description"`
	Recipes     []MealPlanRecipe `json:"recipes" bson:"recipes"`
}

// Food is a food database entry; macros are per serving.
type Food struct {
	ID          string  `json:"id" bson:"id"`
	Name        string  `json:"name" bson:"name"`
	Brand       string  `json:"brand" bson:"brand"`
	Calories    float64 `json:"calories" bson:"calories"`
	Protein     float64 `json:"protein" bson:"protein"`
	Carbs       float64 `json:"carbs" bson:"carbs"`
	Fat         float64 `json:"fat" bson:"fat"`
	Fiber       float64 `json:"fiber" bson:"fiber"`
	Sugar       float64 `json:"sugar" bson:"sugar"`
	ServingSize float64 `json:"serving_size" bson:"serving_size"`
	ServingUnit string  `json:"serving_unit" bson:"serving_unit"`
	IsVerified  bool    `json:"is_verified" bson:"is_verified"`
}

// ScheduledRecipe is a recipe as it appears in a meal plan. Servings is the
// portion eaten, not the recipe yield.
type ScheduledRecipe struct {
	Recipe
	Servings   float64 `json:"servings"`
	OrderIndex int     `json:"order_index"`
}

type MealPlanDetails struct {
	ID          int               `json:"id"`
	DayNumber   int               `json:"day_number"`
	Description string            `json:"description"`
	Recipes     []ScheduledRecipe `json:"recipes"`
}

type DietPlanDetails struct {
	DietPlan
	MealPlans []MealPlanDetails `json:"meal_plans"`
}

type ScheduledExercise struct {
	Exercise
	WorkoutExercise
}

type WorkoutDayDetails struct {
	ID        int                 `json:"id"`
	DayNumber int                 `json:"day_number"`
	FocusArea string              `json:"focus_area"`
	Exercises []ScheduledExercise `json:"exercises"`
}

type WorkoutPlanDetails struct {
	WorkoutPlan
	Days []WorkoutDayDetails `json:"days"`
}

type PlanPreferences struct {
	DietType            DietType `json:"diet_type" validate:"required"`
	ExcludedIngredients []string `json:"excluded_ingredients,omitempty"`
}

type MealSlot struct {
	MealType   MealType `json:"meal_type" bson:"meal_type"`
	RecipeID   int      `json:"recipe_id" bson:"recipe_id"`
	Servings   int      `json:"servings" bson:"servings"`
	OrderIndex int      `json:"order_index" bson:"order_index"`
}

type PlanDay struct {
	DayNumber   int        `json:"day_number" bson:"day_number"`
	Description string     `json:"description" bson:"description"`
	Slots       []MealSlot `json:"slots" bson:"slots"`
	Calories    float64    `json:"calories" bson:"calories"`
	Protein     float64    `json:"protein" bson:"protein"`
	Carbs       float64    `json:"carbs" bson:"carbs"`
	Fat         float64    `json:"fat" bson:"fat"`
}

type GeneratedPlan struct {
	ID                string    `json:"id" bson:"_id"`
	UserID            string    `json:"user_id" bson:"user_id"`
	Name              string    `json:"name" bson:"name"`
	Description       string    `json:"description" bson:"description"`
	GoalType          GoalType  `json:"goal_type" bson:"goal_type"`
	DietType          DietType  `json:"diet_type" bson:"diet_type"`
	DurationDays      int       `json:"duration_days" bson:"duration_days"`
	DailyCalories     int       `json:"daily_calories" bson:"daily_calories"`
	DailyProtein      int       `json:"daily_protein" bson:"daily_protein"`
	DailyCarbs        int       `json:"daily_carbs" bson:"daily_carbs"`
	DailyFat          int       `json:"daily_fat" bson:"daily_fat"`
	IsCustom          bool      `json:"is_custom" bson:"is_custom"`
	ExclusionsRelaxed bool      `json:"exclusions_relaxed" bson:"exclusions_relaxed"`
	Days              []PlanDay `json:"days" bson:"days"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
}

// FoodServing is one logged food; macros are per serving.
type FoodServing struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories" validate:"gte=0"`
	Protein  float64 `json:"protein" validate:"gte=0"`
	Carbs    float64 `json:"carbs" validate:"gte=0"`
	Fat      float64 `json:"fat" validate:"gte=0"`
	Servings float64 `json:"servings" validate:"gt=0"`
}

type MealEntry struct {
	MealType MealType      `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
	Foods    []FoodServing `json:"foods" validate:"dive"`
}

type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type DailySummary struct {
	Total MacroTotals              `json:"total"`
	Meals map[MealType]MacroTotals `json:"meals"`

	// Goal and Remaining are nil when no goal was given. Remaining is kept
	// when it is zero or negative.
	Goal      *int `json:"goal,omitempty"`
	Remaining *int `json:"remaining,omitempty"`
}
