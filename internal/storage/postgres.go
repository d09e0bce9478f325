package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourname/fitplanner/internal"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS diet_types (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS recipes (
	id                INTEGER PRIMARY KEY,
	name              TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	meal_type         TEXT NOT NULL,
	diet_types        TEXT[] NOT NULL DEFAULT '{}',
	prep_time_minutes INTEGER NOT NULL DEFAULT 0,
	cook_time_minutes INTEGER NOT NULL DEFAULT 0,
	servings          INTEGER NOT NULL DEFAULT 1,
	calories          DOUBLE PRECISION NOT NULL DEFAULT 0,
	protein           DOUBLE PRECISION NOT NULL DEFAULT 0,
	carbs             DOUBLE PRECISION NOT NULL DEFAULT 0,
	fat               DOUBLE PRECISION NOT NULL DEFAULT 0,
	fiber             DOUBLE PRECISION NOT NULL DEFAULT 0,
	ingredients       JSONB NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS diet_plans (
	id             INTEGER PRIMARY KEY,
	name           TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	goal_type      TEXT NOT NULL,
	diet_type      TEXT NOT NULL,
	duration_days  INTEGER NOT NULL,
	daily_calories INTEGER NOT NULL,
	daily_protein  INTEGER NOT NULL,
	daily_carbs    INTEGER NOT NULL,
	daily_fat      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS workout_plans (
	id               INTEGER PRIMARY KEY,
	name             TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	goal_type        TEXT NOT NULL,
	difficulty_level TEXT NOT NULL,
	duration_weeks   INTEGER NOT NULL,
	days_per_week    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS meal_plans (
	id           INTEGER PRIMARY KEY,
	diet_plan_id INTEGER NOT NULL REFERENCES diet_plans (id),
	day_number   INTEGER NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	recipes      JSONB NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS exercise_categories (
	id          INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS exercises (
	id                  INTEGER PRIMARY KEY,
	category_id         INTEGER NOT NULL,
	name                TEXT NOT NULL,
	description         TEXT NOT NULL DEFAULT '',
	difficulty_level    TEXT NOT NULL,
	muscle_group        TEXT NOT NULL DEFAULT '',
	equipment_needed    TEXT NOT NULL DEFAULT '',
	instructions        TEXT NOT NULL DEFAULT '',
	video_url           TEXT NOT NULL DEFAULT '',
	calories_per_minute DOUBLE PRECISION NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS workout_days (
	id              INTEGER PRIMARY KEY,
	workout_plan_id INTEGER NOT NULL REFERENCES workout_plans (id),
	day_number      INTEGER NOT NULL,
	focus_area      TEXT NOT NULL DEFAULT '',
	exercises       JSONB NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS foods (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	brand        TEXT NOT NULL DEFAULT '',
	calories     DOUBLE PRECISION NOT NULL DEFAULT 0,
	protein      DOUBLE PRECISION NOT NULL DEFAULT 0,
	carbs        DOUBLE PRECISION NOT NULL DEFAULT 0,
	fat          DOUBLE PRECISION NOT NULL DEFAULT 0,
	fiber        DOUBLE PRECISION NOT NULL DEFAULT 0,
	sugar        DOUBLE PRECISION NOT NULL DEFAULT 0,
	serving_size DOUBLE PRECISION NOT NULL DEFAULT 1,
	serving_unit TEXT NOT NULL DEFAULT '',
	is_verified  BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE TABLE IF NOT EXISTS generated_plans (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	body       JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS generated_plans_user_idx ON generated_plans (user_id, created_at DESC);
`

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

// NewPostgresStorage connects, ensures the schema and seeds an empty catalog.
func NewPostgresStorage(ctx context.Context, dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	p := &PostgresStorage{pool: pool, logger: logger}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		logger.Errorf("failed to apply postgres schema: %v", err)
		return nil, err
	}
	if err := p.seedIfEmpty(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// seedIfEmpty also runs when only the exercise tables are empty; every insert
// skips rows that already exist.
func (p *PostgresStorage) seedIfEmpty(ctx context.Context) error {
	var empty bool
	if err := p.pool.QueryRow(ctx, `SELECT NOT EXISTS (SELECT 1 FROM recipes) OR NOT EXISTS (SELECT 1 FROM exercises)`).Scan(&empty); err != nil {
		p.logger.Errorf("failed to count catalog rows: %v", err)
		return err
	}
	if !empty {
		return nil
	}
	seed, err := SeedCatalog()
	if err != nil {
		return err
	}
	p.logger.Infof("seeding postgres catalog with %d recipes", len(seed.Recipes))
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		for _, d := range seed.DietTypes {
			if _, err := tx.Exec(ctx, `INSERT INTO diet_types (id, name, description) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
				string(d.ID), d.Name, d.Description); err != nil {
				return err
			}
		}
		for _, r := range seed.Recipes {
			ingredients, err := json.Marshal(r.Ingredients)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `INSERT INTO recipes (id, name, description, meal_type, diet_types, prep_time_minutes, cook_time_minutes, servings, calories, protein, carbs, fat, fiber, ingredients) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) ON CONFLICT DO NOTHING`,
				r.ID, r.Name, r.Description, string(r.MealType), dietTypesToStrings(r.DietTypes), r.PrepTimeMinutes, r.CookTimeMinutes, r.Servings,
				r.Calories, r.Protein, r.Carbs, r.Fat, r.Fiber, ingredients); err != nil {
				return err
			}
		}
		for _, d := range seed.DietPlans {
			if _, err := tx.Exec(ctx, `INSERT INTO diet_plans (id, name, description, goal_type, diet_type, duration_days, daily_calories, daily_protein, daily_carbs, daily_fat) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) ON CONFLICT DO NOTHING`,
				d.ID, d.Name, d.Description, string(d.GoalType), string(d.DietType), d.DurationDays, d.DailyCalories, d.DailyProtein, d.DailyCarbs, d.DailyFat); err != nil {
				return err
			}
		}
		for _, w := range seed.WorkoutPlans {
			if _, err := tx.Exec(ctx, `INSERT INTO workout_plans (id, name, description, goal_type, difficulty_level, duration_weeks, days_per_week) VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT DO NOTHING`,
				w.ID, w.Name, w.Description, string(w.GoalType), string(w.DifficultyLevel), w.DurationWeeks, w.DaysPerWeek); err != nil {
				return err
			}
		}
		for _, m := range seed.MealPlans {
			recipes, err := json.Marshal(m.Recipes)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `INSERT INTO meal_plans (id, diet_plan_id, day_number, description, recipes) VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`,
				m.ID, m.DietPlanID, m.DayNumber, m.Description, recipes); err != nil {
				return err
			}
		}
		for _, c := range seed.ExerciseCategories {
			if _, err := tx.Exec(ctx, `INSERT INTO exercise_categories (id, name, description) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
				c.ID, c.Name, c.Description); err != nil {
				return err
			}
		}
		for _, e := range seed.Exercises {
			if _, err := tx.Exec(ctx, `INSERT INTO exercises (id, category_id, name, description, difficulty_level, muscle_group, equipment_needed, instructions, video_url, calories_per_minute) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) ON CONFLICT DO NOTHING`,
				e.ID, e.CategoryID, e.Name, e.Description, string(e.DifficultyLevel), e.MuscleGroup, e.EquipmentNeeded, e.Instructions, e.VideoURL, e.CaloriesPerMinute); err != nil {
				return err
			}
		}
		for _, d := range seed.WorkoutDays {
			exercises, err := json.Marshal(d.Exercises)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `INSERT INTO workout_days (id, workout_plan_id, day_number, focus_area, exercises) VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`,
				d.ID, d.WorkoutPlanID, d.DayNumber, d.FocusArea, exercises); err != nil {
				return err
			}
		}
		for _, f := range seed.Foods {
			if _, err := tx.Exec(ctx, `INSERT INTO foods (id, name, brand, calories, protein, carbs, fat, fiber, sugar, serving_size, serving_unit, is_verified) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) ON CONFLICT DO NOTHING`,
				f.ID, f.Name, f.Brand, f.Calories, f.Protein, f.Carbs, f.Fat, f.Fiber, f.Sugar, f.ServingSize, f.ServingUnit, f.IsVerified); err != nil {
				return err
			}
		}
		return nil
	})
}

// --- CatalogRepository ---
func (p *PostgresStorage) ListDietTypes(ctx context.Context) ([]internal.DietTypeInfo, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, name, description FROM diet_types ORDER BY name`)
	if err != nil {
		p.logger.Errorf("failed to query diet types: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.DietTypeInfo{}
	for rows.Next() {
		var d internal.DietTypeInfo
		var id string
		if err := rows.Scan(&id, &d.Name, &d.Description); err != nil {
			p.logger.Errorf("failed to scan diet type: %v", err)
			return nil, err
		}
		d.ID = internal.DietType(id)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (p *PostgresStorage) ListRecipes(ctx context.Context) ([]internal.Recipe, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, name, description, meal_type, diet_types, prep_time_minutes, cook_time_minutes, servings, calories, protein, carbs, fat, fiber, ingredients FROM recipes ORDER BY id`)
	if err != nil {
		p.logger.Errorf("failed to query recipes: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.Recipe{}
	for rows.Next() {
		var r internal.Recipe
		var mealType string
		var dietTypes []string
		var ingredients []byte
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &mealType, &dietTypes, &r.PrepTimeMinutes, &r.CookTimeMinutes, &r.Servings,
			&r.Calories, &r.Protein, &r.Carbs, &r.Fat, &r.Fiber, &ingredients); err != nil {
			p.logger.Errorf("failed to scan recipe: %v", err)
			return nil, err
		}
		r.MealType = internal.MealType(mealType)
		r.DietTypes = stringsToDietTypes(dietTypes)
		if err := json.Unmarshal(ingredients, &r.Ingredients); err != nil {
			return nil, fmt.Errorf("recipe %d ingredients: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *PostgresStorage) ListDietPlans(ctx context.Context) ([]internal.DietPlan, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, name, description, goal_type, diet_type, duration_days, daily_calories, daily_protein, daily_carbs, daily_fat FROM diet_plans ORDER BY id`)
	if err != nil {
		p.logger.Errorf("failed to query diet plans: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.DietPlan{}
	for rows.Next() {
		var d internal.DietPlan
		var goal, diet string
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &goal, &diet, &d.DurationDays, &d.DailyCalories, &d.DailyProtein, &d.DailyCarbs, &d.DailyFat); err != nil {
			p.logger.Errorf("failed to scan diet plan: %v", err)
			return nil, err
		}
		d.GoalType = internal.GoalType(goal)
		d.DietType = internal.DietType(diet)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (p *PostgresStorage) ListWorkoutPlans(ctx context.Context) ([]internal.WorkoutPlan, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, name, description, goal_type, difficulty_level, duration_weeks, days_per_week FROM workout_plans ORDER BY id`)
	if err != nil {
		p.logger.Errorf("failed to query workout plans: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.WorkoutPlan{}
	for rows.Next() {
		var w internal.WorkoutPlan
		var goal, difficulty string
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &goal, &difficulty, &w.DurationWeeks, &w.DaysPerWeek); err != nil {
			p.logger.Errorf("failed to scan workout plan: %v", err)
			return nil, err
		}
		w.GoalType = internal.GoalType(goal)
		w.DifficultyLevel = internal.Difficulty(difficulty)
		out = append(out, w)
	}
	return out, rows.Err()
}

func (p *PostgresStorage) ListMealPlans(ctx context.Context) ([]internal.MealPlan, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, diet_plan_id, day_number, description, recipes FROM meal_plans ORDER BY id`)
	if err != nil {
		p.logger.Errorf("failed to query meal plans: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.MealPlan{}
	for rows.Next() {
		var m internal.MealPlan
		var recipes []byte
		if err := rows.Scan(&m.ID, &m.DietPlanID, &m.DayNumber, &m.Description, &recipes); err != nil {
			p.logger.Errorf("failed to scan meal plan: %v", err)
			return nil, err
		}
		if err := json.Unmarshal(recipes, &m.Recipes); err != nil {
			return nil, fmt.Errorf("meal plan %d recipes: %w", m.ID, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (p *PostgresStorage) ListExerciseCategories(ctx context.Context) ([]internal.ExerciseCategory, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, name, description FROM exercise_categories ORDER BY id`)
	if err != nil {
		p.logger.Errorf("failed to query exercise categories: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.ExerciseCategory{}
	for rows.Next() {
		var c internal.ExerciseCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *PostgresStorage) ListExercises(ctx context.Context) ([]internal.Exercise, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, category_id, name, description, difficulty_level, muscle_group, equipment_needed, instructions, video_url, calories_per_minute FROM exercises ORDER BY id`)
	if err != nil {
		p.logger.Errorf("failed to query exercises: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.Exercise{}
	for rows.Next() {
		var e internal.Exercise
		var difficulty string
		if err := rows.Scan(&e.ID, &e.CategoryID, &e.Name, &e.Description, &difficulty, &e.MuscleGroup, &e.EquipmentNeeded, &e.Instructions, &e.VideoURL, &e.CaloriesPerMinute); err != nil {
			p.logger.Errorf("failed to scan exercise: %v", err)
			return nil, err
		}
		e.DifficultyLevel = internal.Difficulty(difficulty)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (p *PostgresStorage) ListWorkoutDays(ctx context.Context) ([]internal.WorkoutDay, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, workout_plan_id, day_number, focus_area, exercises FROM workout_days ORDER BY id`)
	if err != nil {
		p.logger.Errorf("failed to query workout days: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.WorkoutDay{}
	for rows.Next() {
		var d internal.WorkoutDay
		var exercises []byte
		if err := rows.Scan(&d.ID, &d.WorkoutPlanID, &d.DayNumber, &d.FocusArea, &exercises); err != nil {
			p.logger.Errorf("failed to scan workout day: %v", err)
			return nil, err
		}
		if err := json.Unmarshal(exercises, &d.Exercises); err != nil {
			return nil, fmt.Errorf("workout day %d exercises: %w", d.ID, err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (p *PostgresStorage) ListFoods(ctx context.Context) ([]internal.Food, error) {
	// length first so "10" sorts after "9".
	rows, err := p.pool.Query(ctx, `SELECT id, name, brand, calories, protein, carbs, fat, fiber, sugar, serving_size, serving_unit, is_verified FROM foods ORDER BY length(id), id`)
	if err != nil {
		p.logger.Errorf("failed to query foods: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.Food{}
	for rows.Next() {
		var f internal.Food
		if err := rows.Scan(&f.ID, &f.Name, &f.Brand, &f.Calories, &f.Protein, &f.Carbs, &f.Fat, &f.Fiber, &f.Sugar, &f.ServingSize, &f.ServingUnit, &f.IsVerified); err != nil {
			p.logger.Errorf("failed to scan food: %v", err)
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// --- PlanRepository ---
func (p *PostgresStorage) SavePlan(ctx context.Context, plan *internal.GeneratedPlan) error {
	body, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `INSERT INTO generated_plans (id, user_id, created_at, body) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET user_id = EXCLUDED.user_id, created_at = EXCLUDED.created_at, body = EXCLUDED.body`,
		plan.ID, plan.UserID, plan.CreatedAt, body)
	if err != nil {
		p.logger.Errorf("failed to insert generated plan: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetPlan(ctx context.Context, id string) (*internal.GeneratedPlan, error) {
	var body []byte
	err := p.pool.QueryRow(ctx, `SELECT body FROM generated_plans WHERE id = $1`, id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("storage: plan %s: %w", id, internal.ErrNotFound)
	}
	if err != nil {
		p.logger.Errorf("failed to query generated plan: %v", err)
		return nil, err
	}
	var plan internal.GeneratedPlan
	if err := json.Unmarshal(body, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (p *PostgresStorage) ListPlans(ctx context.Context, userID string) ([]internal.GeneratedPlan, error) {
	rows, err := p.pool.Query(ctx, `SELECT body FROM generated_plans WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		p.logger.Errorf("failed to query generated plans: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.GeneratedPlan{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			p.logger.Errorf("failed to scan generated plan: %v", err)
			return nil, err
		}
		var plan internal.GeneratedPlan
		if err := json.Unmarshal(body, &plan); err != nil {
			return nil, err
		}
		out = append(out, plan)
	}
	return out, rows.Err()
}

func dietTypesToStrings(in []internal.DietType) []string {
	out := make([]string, len(in))
	for i, d := range in {
		out[i] = string(d)
	}
	return out
}

func stringsToDietTypes(in []string) []internal.DietType {
	out := make([]internal.DietType, len(in))
	for i, s := range in {
		out[i] = internal.DietType(s)
	}
	return out
}

// --- Compile-time assertions ---
var _ CatalogRepository = (*PostgresStorage)(nil)
var _ PlanRepository = (*PostgresStorage)(nil)
