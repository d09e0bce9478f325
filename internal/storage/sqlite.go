package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/glebarez/go-sqlite"
	"github.com/yourname/fitplanner/internal"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS diet_types (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS recipes (
		id   INTEGER PRIMARY KEY,
		body TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS diet_plans (
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
	)`,
	`CREATE TABLE IF NOT EXISTS workout_plans (
		id               INTEGER PRIMARY KEY,
		name             TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		goal_type        TEXT NOT NULL,
		difficulty_level TEXT NOT NULL,
		duration_weeks   INTEGER NOT NULL,
		days_per_week    INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS meal_plans (
		id           INTEGER PRIMARY KEY,
		diet_plan_id INTEGER NOT NULL,
		body         TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS exercise_categories (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS exercises (
		id          INTEGER PRIMARY KEY,
		category_id INTEGER NOT NULL,
		body        TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS workout_days (
		id              INTEGER PRIMARY KEY,
		workout_plan_id INTEGER NOT NULL,
		body            TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS foods (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		body TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS generated_plans (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		body       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS generated_plans_user_idx ON generated_plans (user_id, created_at)`,
}

// SQLiteStorage keeps the catalog and generated plans in a single SQLite
// file. Recipes, exercises, foods, plan days and generated plans are stored
// as JSON documents.
type SQLiteStorage struct {
	db     *sql.DB
	logger internal.Logger
}

func NewSQLiteStorage(ctx context.Context, path string, logger internal.Logger) (*SQLiteStorage, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Errorf("failed to open sqlite database: %v", err)
		return nil, err
	}
	// A single connection avoids SQLITE_BUSY between pooled writers.
	db.SetMaxOpenConns(1)

	s := &SQLiteStorage{db: db, logger: logger}
	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			logger.Errorf("failed to apply sqlite schema: %v", err)
			return nil, err
		}
	}
	if err := s.seedIfEmpty(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) seedIfEmpty(ctx context.Context) error {
	var empty bool
	if err := s.db.QueryRowContext(ctx, `SELECT NOT EXISTS (SELECT 1 FROM recipes) OR NOT EXISTS (SELECT 1 FROM exercises)`).Scan(&empty); err != nil {
		return err
	}
	if !empty {
		return nil
	}
	seed, err := SeedCatalog()
	if err != nil {
		return err
	}
	s.logger.Infof("seeding sqlite catalog with %d recipes", len(seed.Recipes))
	return s.ImportCatalog(ctx, seed)
}

// ImportCatalog upserts every entry of c in one transaction.
func (s *SQLiteStorage) ImportCatalog(ctx context.Context, c *Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, d := range c.DietTypes {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO diet_types (id, name, description) VALUES (?, ?, ?)`,
			string(d.ID), d.Name, d.Description); err != nil {
			return err
		}
	}
	for _, r := range c.Recipes {
		if err := insertJSON(ctx, tx, `INSERT OR REPLACE INTO recipes (id, body) VALUES (?, ?)`, r, r.ID); err != nil {
			return err
		}
	}
	for _, m := range c.MealPlans {
		if err := insertJSON(ctx, tx, `INSERT OR REPLACE INTO meal_plans (id, diet_plan_id, body) VALUES (?, ?, ?)`, m, m.ID, m.DietPlanID); err != nil {
			return err
		}
	}
	for _, cat := range c.ExerciseCategories {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO exercise_categories (id, name, description) VALUES (?, ?, ?)`,
			cat.ID, cat.Name, cat.Description); err != nil {
			return err
		}
	}
	for _, e := range c.Exercises {
		if err := insertJSON(ctx, tx, `INSERT OR REPLACE INTO exercises (id, category_id, body) VALUES (?, ?, ?)`, e, e.ID, e.CategoryID); err != nil {
			return err
		}
	}
	for _, d := range c.WorkoutDays {
		if err := insertJSON(ctx, tx, `INSERT OR REPLACE INTO workout_days (id, workout_plan_id, body) VALUES (?, ?, ?)`, d, d.ID, d.WorkoutPlanID); err != nil {
			return err
		}
	}
	for _, f := range c.Foods {
		if err := insertJSON(ctx, tx, `INSERT OR REPLACE INTO foods (id, name, body) VALUES (?, ?, ?)`, f, f.ID, f.Name); err != nil {
			return err
		}
	}
	for _, d := range c.DietPlans {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO diet_plans (id, name, description, goal_type, diet_type, duration_days, daily_calories, daily_protein, daily_carbs, daily_fat) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.Name, d.Description, string(d.GoalType), string(d.DietType), d.DurationDays, d.DailyCalories, d.DailyProtein, d.DailyCarbs, d.DailyFat); err != nil {
			return err
		}
	}
	for _, w := range c.WorkoutPlans {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO workout_plans (id, name, description, goal_type, difficulty_level, duration_weeks, days_per_week) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			w.ID, w.Name, w.Description, string(w.GoalType), string(w.DifficultyLevel), w.DurationWeeks, w.DaysPerWeek); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// insertJSON runs query with args followed by v encoded as JSON.
func insertJSON(ctx context.Context, tx *sql.Tx, query string, v any, args ...any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, append(args, string(body))...)
	return err
}

// queryJSON decodes the single body column of every row.
func queryJSON[T any](ctx context.Context, db *sql.DB, query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(body), &v); err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// --- CatalogRepository ---
func (s *SQLiteStorage) ListDietTypes(ctx context.Context) ([]internal.DietTypeInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description FROM diet_types ORDER BY name`)
	if err != nil {
		s.logger.Errorf("failed to query diet types: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.DietTypeInfo{}
	for rows.Next() {
		var d internal.DietTypeInfo
		var id string
		if err := rows.Scan(&id, &d.Name, &d.Description); err != nil {
			return nil, err
		}
		d.ID = internal.DietType(id)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLiteStorage) ListRecipes(ctx context.Context) ([]internal.Recipe, error) {
	out, err := queryJSON[internal.Recipe](ctx, s.db, `SELECT body FROM recipes ORDER BY id`)
	if err != nil {
		s.logger.Errorf("failed to query recipes: %v", err)
	}
	return out, err
}

func (s *SQLiteStorage) ListDietPlans(ctx context.Context) ([]internal.DietPlan, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description, goal_type, diet_type, duration_days, daily_calories, daily_protein, daily_carbs, daily_fat FROM diet_plans ORDER BY id`)
	if err != nil {
		s.logger.Errorf("failed to query diet plans: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.DietPlan{}
	for rows.Next() {
		var d internal.DietPlan
		var goal, diet string
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &goal, &diet, &d.DurationDays, &d.DailyCalories, &d.DailyProtein, &d.DailyCarbs, &d.DailyFat); err != nil {
			return nil, err
		}
		d.GoalType = internal.GoalType(goal)
		d.DietType = internal.DietType(diet)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLiteStorage) ListWorkoutPlans(ctx context.Context) ([]internal.WorkoutPlan, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description, goal_type, difficulty_level, duration_weeks, days_per_week FROM workout_plans ORDER BY id`)
	if err != nil {
		s.logger.Errorf("failed to query workout plans: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []internal.WorkoutPlan{}
	for rows.Next() {
		var w internal.WorkoutPlan
		var goal, difficulty string
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &goal, &difficulty, &w.DurationWeeks, &w.DaysPerWeek); err != nil {
			return nil, err
		}
		w.GoalType = internal.GoalType(goal)
		w.DifficultyLevel = internal.Difficulty(difficulty)
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *SQLiteStorage) ListMealPlans(ctx context.Context) ([]internal.MealPlan, error) {
	out, err := queryJSON[internal.MealPlan](ctx, s.db, `SELECT body FROM meal_plans ORDER BY id`)
	if err != nil {
		s.logger.Errorf("failed to query meal plans: %v", err)
	}
	return out, err
}

func (s *SQLiteStorage) ListExerciseCategories(ctx context.Context) ([]internal.ExerciseCategory, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description FROM exercise_categories ORDER BY id`)
	if err != nil {
		s.logger.Errorf("failed to query exercise categories: %v", err)
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

func (s *SQLiteStorage) ListExercises(ctx context.Context) ([]internal.Exercise, error) {
	out, err := queryJSON[internal.Exercise](ctx, s.db, `SELECT body FROM exercises ORDER BY id`)
	if err != nil {
		s.logger.Errorf("failed to query exercises: %v", err)
	}
	return out, err
}

func (s *SQLiteStorage) ListWorkoutDays(ctx context.Context) ([]internal.WorkoutDay, error) {
	out, err := queryJSON[internal.WorkoutDay](ctx, s.db, `SELECT body FROM workout_days ORDER BY id`)
	if err != nil {
		s.logger.Errorf("failed to query workout days: %v", err)
	}
	return out, err
}

func (s *SQLiteStorage) ListFoods(ctx context.Context) ([]internal.Food, error) {
	out, err := queryJSON[internal.Food](ctx, s.db, `SELECT body FROM foods ORDER BY length(id), id`)
	if err != nil {
		s.logger.Errorf("failed to query foods: %v", err)
	}
	return out, err
}

// --- PlanRepository ---
func (s *SQLiteStorage) SavePlan(ctx context.Context, plan *internal.GeneratedPlan) error {
	body, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO generated_plans (id, user_id, created_at, body) VALUES (?, ?, ?, ?)`,
		plan.ID, plan.UserID, plan.CreatedAt.UnixNano(), string(body))
	if err != nil {
		s.logger.Errorf("failed to insert generated plan: %v", err)
		return err
	}
	return nil
}

func (s *SQLiteStorage) GetPlan(ctx context.Context, id string) (*internal.GeneratedPlan, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM generated_plans WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: plan %s: %w", id, internal.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var plan internal.GeneratedPlan
	if err := json.Unmarshal([]byte(body), &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *SQLiteStorage) ListPlans(ctx context.Context, userID string) ([]internal.GeneratedPlan, error) {
	out, err := queryJSON[internal.GeneratedPlan](ctx, s.db, `SELECT body FROM generated_plans WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		s.logger.Errorf("failed to query generated plans: %v", err)
	}
	return out, err
}

// --- Compile-time assertions ---
var _ CatalogRepository = (*SQLiteStorage)(nil)
var _ PlanRepository = (*SQLiteStorage)(nil)
