package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yourname/fitplanner/internal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	dietTypesCollection          = "diet_types"
	recipesCollection            = "recipes"
	dietPlansCollection          = "diet_plans"
	mealPlansCollection          = "meal_plans"
	workoutPlansCollection       = "workout_plans"
	workoutDaysCollection        = "workout_days"
	exerciseCategoriesCollection = "exercise_categories"
	exercisesCollection          = "exercises"
	foodsCollection              = "foods"
	generatedPlansCollection     = "generated_plans"
)

// MongoStorage keeps one collection per catalog type plus generated_plans,
// whose documents are keyed by plan ID.
type MongoStorage struct {
	client *mongo.Client
	db     *mongo.Database
	logger internal.Logger
}

func NewMongoStorage(ctx context.Context, uri, database string, logger internal.Logger) (*MongoStorage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	m := &MongoStorage{client: client, db: client.Database(database), logger: logger}
	if err := m.seedIfEmpty(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	logger.Infof("connected to mongodb database %s", database)
	return m, nil
}

func (m *MongoStorage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// seedIfEmpty fills each catalog collection that has no documents yet.
func (m *MongoStorage) seedIfEmpty(ctx context.Context) error {
	seed, err := SeedCatalog()
	if err != nil {
		return err
	}
	for name, docs := range catalogDocuments(seed) {
		coll := m.db.Collection(name)
		n, err := coll.CountDocuments(ctx, bson.D{})
		if err != nil {
			return err
		}
		if n > 0 || len(docs) == 0 {
			continue
		}
		m.logger.Infof("seeding mongodb collection %s with %d documents", name, len(docs))
		if _, err := coll.InsertMany(ctx, docs); err != nil {
			return err
		}
	}
	return nil
}

// ImportCatalog inserts every entry of c. Existing documents are left alone.
func (m *MongoStorage) ImportCatalog(ctx context.Context, c *Catalog) error {
	for name, docs := range catalogDocuments(c) {
		if len(docs) == 0 {
			continue
		}
		if _, err := m.db.Collection(name).InsertMany(ctx, docs); err != nil {
			return err
		}
	}
	return nil
}

// catalogDocuments maps each catalog collection to its documents.
func catalogDocuments(c *Catalog) map[string][]interface{} {
	return map[string][]interface{}{
		dietTypesCollection:          toDocuments(c.DietTypes),
		recipesCollection:            toDocuments(c.Recipes),
		dietPlansCollection:          toDocuments(c.DietPlans),
		mealPlansCollection:          toDocuments(c.MealPlans),
		workoutPlansCollection:       toDocuments(c.WorkoutPlans),
		workoutDaysCollection:        toDocuments(c.WorkoutDays),
		exerciseCategoriesCollection: toDocuments(c.ExerciseCategories),
		exercisesCollection:          toDocuments(c.Exercises),
		foodsCollection:              toDocuments(c.Foods),
	}
}

func toDocuments[T any](items []T) []interface{} {
	docs := make([]interface{}, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	return docs
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts *options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func byIDAscending() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
}

// --- CatalogRepository ---
func (m *MongoStorage) ListDietTypes(ctx context.Context) ([]internal.DietTypeInfo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[internal.DietTypeInfo](ctx, m.db.Collection(dietTypesCollection), bson.D{}, opts)
}

func (m *MongoStorage) ListRecipes(ctx context.Context) ([]internal.Recipe, error) {
	return findAll[internal.Recipe](ctx, m.db.Collection(recipesCollection), bson.D{}, byIDAscending())
}

func (m *MongoStorage) ListDietPlans(ctx context.Context) ([]internal.DietPlan, error) {
	return findAll[internal.DietPlan](ctx, m.db.Collection(dietPlansCollection), bson.D{}, byIDAscending())
}

func (m *MongoStorage) ListWorkoutPlans(ctx context.Context) ([]internal.WorkoutPlan, error) {
	return findAll[internal.WorkoutPlan](ctx, m.db.Collection(workoutPlansCollection), bson.D{}, byIDAscending())
}

func (m *MongoStorage) ListMealPlans(ctx context.Context) ([]internal.MealPlan, error) {
	return findAll[internal.MealPlan](ctx, m.db.Collection(mealPlansCollection), bson.D{}, byIDAscending())
}

func (m *MongoStorage) ListExerciseCategories(ctx context.Context) ([]internal.ExerciseCategory, error) {
	return findAll[internal.ExerciseCategory](ctx, m.db.Collection(exerciseCategoriesCollection), bson.D{}, byIDAscending())
}

func (m *MongoStorage) ListExercises(ctx context.Context) ([]internal.Exercise, error) {
	return findAll[internal.Exercise](ctx, m.db.Collection(exercisesCollection), bson.D{}, byIDAscending())
}

func (m *MongoStorage) ListWorkoutDays(ctx context.Context) ([]internal.WorkoutDay, error) {
	return findAll[internal.WorkoutDay](ctx, m.db.Collection(workoutDaysCollection), bson.D{}, byIDAscending())
}

// ListFoods keeps insertion order; food ids are strings, so sorting on id
// would put "10" before "2".
func (m *MongoStorage) ListFoods(ctx context.Context) ([]internal.Food, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findAll[internal.Food](ctx, m.db.Collection(foodsCollection), bson.D{}, opts)
}

// --- PlanRepository ---
func (m *MongoStorage) SavePlan(ctx context.Context, plan *internal.GeneratedPlan) error {
	_, err := m.db.Collection(generatedPlansCollection).ReplaceOne(ctx,
		bson.M{"_id": plan.ID}, plan, options.Replace().SetUpsert(true))
	if err != nil {
		m.logger.Errorf("failed to upsert generated plan: %v", err)
	}
	return err
}

func (m *MongoStorage) GetPlan(ctx context.Context, id string) (*internal.GeneratedPlan, error) {
	var plan internal.GeneratedPlan
	err := m.db.Collection(generatedPlansCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("storage: plan %s: %w", id, internal.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (m *MongoStorage) ListPlans(ctx context.Context, userID string) ([]internal.GeneratedPlan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findAll[internal.GeneratedPlan](ctx, m.db.Collection(generatedPlansCollection), bson.M{"user_id": userID}, opts)
}

// --- Compile-time assertions ---
var _ CatalogRepository = (*MongoStorage)(nil)
var _ PlanRepository = (*MongoStorage)(nil)
