package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/fitplanner/internal"
	"github.com/yourname/fitplanner/internal/auth"
	"github.com/yourname/fitplanner/internal/config"
	"github.com/yourname/fitplanner/internal/storage"
)

const exampleProfileJSON = `{"gender":"male","age":35,"weight_kg":85,"height_cm":178,"activity_level":"moderately_active","goal_type":"weight_loss"}`

type envelope struct {
	Data  json.RawMessage    `json:"data"`
	Meta  map[string]any     `json:"meta"`
	Error *internal.AppError `json:"error"`
}

func testConfig() *config.Config {
	return &config.Config{Env: "development", AuthToken: "MOCK-TOKEN", CORSOrigins: []string{"*"}}
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	catalog, err := storage.SeedCatalog()
	require.NoError(t, err)
	return newTestRouter(storage.NewMemoryCatalog(catalog), testConfig())
}

func newTestRouter(catalog storage.CatalogRepository, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := internal.NewNopLogger()
	app := NewApp(logger, catalog, storage.NewMemoryPlanStore(), 42)
	return NewRouter(app, auth.NewProvider(cfg, logger), cfg)
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer MOCK-TOKEN")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealthAndAuth(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/diet-types", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/diet-types", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostCalorieTarget(t *testing.T) {
	r := setupRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/calories/target", exampleProfileJSON)
	require.Equal(t, http.StatusOK, w.Code)
	plan := decode[internal.CaloriePlan](t, env.Data)
	assert.Equal(t, 2278, plan.TargetCalories)
	assert.InDelta(t, 1792.5, plan.BMR, 1e-9)

	w, env = do(t, r, http.MethodPost, "/api/calories/target", `{"gender":"male","age":0,"weight_kg":85,"height_cm":178}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, 400, env.Error.Code)

	w, _ = do(t, r, http.MethodPost, "/api/calories/target", `{"gender":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, body := range []string{
		`{"gender":"male","age":35,"weight_kg":1e308,"height_cm":178,"activity_level":"extremely_active","goal_type":"muscle_gain"}`,
		`{"gender":"female","age":35,"weight_kg":1e18,"height_cm":178}`,
		`{"gender":"male","age":35,"weight_kg":85,"height_cm":1e300}`,
	} {
		w, env = do(t, r, http.MethodPost, "/api/calories/target", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.NotNil(t, env.Error, body)
	}
}

func TestPostCalorieSummary(t *testing.T) {
	r := setupRouter(t)

	body := `{"profile":` + exampleProfileJSON + `,"meals":[{"meal_type":"lunch","foods":[{"name":"Salad","calories":400,"protein":35,"servings":1.5}]}]}`
	w, env := do(t, r, http.MethodPost, "/api/calories/summary", body)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[internal.DailySummary](t, env.Data)
	assert.InDelta(t, 600, summary.Total.Calories, 1e-9)
	require.NotNil(t, summary.Goal)
	assert.Equal(t, 2278, *summary.Goal)
	assert.Equal(t, 1678, *summary.Remaining)

	exact := `{"goal":600,"meals":[{"meal_type":"lunch","foods":[{"name":"Salad","calories":400,"servings":1.5}]}]}`
	w, env = do(t, r, http.MethodPost, "/api/calories/summary", exact)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"remaining":0`)
	assert.Contains(t, string(env.Data), `"goal":600`)

	w, env = do(t, r, http.MethodPost, "/api/calories/summary", `{"meals":[{"meal_type":"lunch","foods":[]}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, string(env.Data), `"remaining"`)

	w, _ = do(t, r, http.MethodPost, "/api/calories/summary", `{"meals":[{"meal_type":"brunch","foods":[]}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMacros(t *testing.T) {
	r := setupRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/macros/keto?calories=1600", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Grams struct {
			ProteinG int `json:"protein_g"`
			CarbsG   int `json:"carbs_g"`
			FatG     int `json:"fat_g"`
		} `json:"grams"`
	}](t, env.Data)
	assert.Equal(t, 100, body.Grams.ProteinG)
	assert.Equal(t, 20, body.Grams.CarbsG)
	assert.Equal(t, 124, body.Grams.FatG)

	w, env = do(t, r, http.MethodGet, "/api/macros/paleo", "")
	require.Equal(t, http.StatusOK, w.Code)
	split := decode[map[string]float64](t, env.Data)
	assert.InDelta(t, 0.5, split["carbs_pct"], 1e-9)

	w, _ = do(t, r, http.MethodGet, "/api/macros/keto?calories=-5", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(t, r, http.MethodGet, "/api/macros/keto?calories=lots", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	r := setupRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[storage.Catalog](t, env.Data)
	assert.Len(t, snap.Recipes, 15)

	w, env = do(t, r, http.MethodGet, "/api/diet-types", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]internal.DietTypeInfo](t, env.Data), 8)

	w, env = do(t, r, http.MethodGet, "/api/recipes?diet_type=keto&meal_type=snack", "")
	require.Equal(t, http.StatusOK, w.Code)
	recipes := decode[[]internal.Recipe](t, env.Data)
	require.Len(t, recipes, 1)
	assert.Equal(t, 15, recipes[0].ID)
	assert.EqualValues(t, 1, env.Meta["count"])

	_, env = do(t, r, http.MethodGet, "/api/recipes?q=chickpea", "")
	assert.Len(t, decode[[]internal.Recipe](t, env.Data), 2)

	w, env = do(t, r, http.MethodGet, "/api/diet-plans?goal=weight_loss", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]internal.DietPlan](t, env.Data), 2)

	w, env = do(t, r, http.MethodGet, "/api/workout-plans?difficulty=advanced", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]internal.WorkoutPlan](t, env.Data), 2)
}

func TestRecommendations(t *testing.T) {
	r := setupRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/recommendations/diet", exampleProfileJSON)
	require.Equal(t, http.StatusOK, w.Code)
	diet := decode[[]internal.DietPlan](t, env.Data)
	require.Len(t, diet, 2)
	assert.Equal(t, 1, diet[0].ID)
	assert.Equal(t, 3, diet[1].ID)

	w, env = do(t, r, http.MethodPost, "/api/recommendations/workout", exampleProfileJSON)
	require.Equal(t, http.StatusOK, w.Code)
	workouts := decode[[]internal.WorkoutPlan](t, env.Data)
	require.Len(t, workouts, 2)
	assert.Equal(t, "intermediate", env.Meta["difficulty"])

	w, _ = do(t, r, http.MethodPost, "/api/recommendations/diet", `{"gender":"x","age":35,"weight_kg":85,"height_cm":178}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomPlans(t *testing.T) {
	r := setupRouter(t)

	body := `{"profile":` + exampleProfileJSON + `,"preferences":{"diet_type":"keto"}}`
	w, env := do(t, r, http.MethodPost, "/api/plans/custom", body)
	require.Equal(t, http.StatusCreated, w.Code)
	plan := decode[internal.GeneratedPlan](t, env.Data)
	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, "u1", plan.UserID)
	assert.Equal(t, "Custom Keto Plan", plan.Name)
	assert.Len(t, plan.Days, 7)

	w, env = do(t, r, http.MethodGet, "/api/plans/custom/"+plan.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, plan.ID, decode[internal.GeneratedPlan](t, env.Data).ID)

	w, env = do(t, r, http.MethodGet, "/api/plans/custom", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]internal.GeneratedPlan](t, env.Data), 1)

	w, _ = do(t, r, http.MethodGet, "/api/plans/custom/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/plans/custom", `{"profile":`+exampleProfileJSON+`,"preferences":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomPlans_SeededAreReproducible(t *testing.T) {
	body := `{"profile":` + exampleProfileJSON + `,"preferences":{"diet_type":"balanced"}}`

	_, first := do(t, setupRouter(t), http.MethodPost, "/api/plans/custom", body)
	_, second := do(t, setupRouter(t), http.MethodPost, "/api/plans/custom", body)
	a := decode[internal.GeneratedPlan](t, first.Data)
	b := decode[internal.GeneratedPlan](t, second.Data)
	assert.Equal(t, a.Days, b.Days)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCatalogLookups(t *testing.T) {
	r := setupRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/recipes/9", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 9, decode[internal.Recipe](t, env.Data).ID)

	w, env = do(t, r, http.MethodGet, "/api/diet-plans/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	diet := decode[internal.DietPlanDetails](t, env.Data)
	assert.Equal(t, "Weight Loss Balanced Plan", diet.Name)
	require.Len(t, diet.MealPlans, 2)
	assert.Len(t, diet.MealPlans[0].Recipes, 4)
	assert.Contains(t, string(env.Data), `"meal_plans"`)

	w, env = do(t, r, http.MethodGet, "/api/workout-plans/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	workout := decode[internal.WorkoutPlanDetails](t, env.Data)
	require.Len(t, workout.Days, 4)
	require.Len(t, workout.Days[0].Exercises, 5)
	assert.Equal(t, "Shoulder Press", workout.Days[0].Exercises[2].Name)
	assert.Equal(t, 8, workout.Days[0].Exercises[2].Reps)

	w, env = do(t, r, http.MethodGet, "/api/exercise-categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]internal.ExerciseCategory](t, env.Data), 5)

	w, env = do(t, r, http.MethodGet, "/api/exercises?category_id=4", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]internal.Exercise](t, env.Data), 2)
	assert.EqualValues(t, 2, env.Meta["count"])

	w, env = do(t, r, http.MethodGet, "/api/exercises/11", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Running", decode[internal.Exercise](t, env.Data).Name)

	w, env = do(t, r, http.MethodGet, "/api/foods?q=yogurt", "")
	require.Equal(t, http.StatusOK, w.Code)
	foods := decode[[]internal.Food](t, env.Data)
	require.Len(t, foods, 1)
	assert.Equal(t, "6", foods[0].ID)

	_, env = do(t, r, http.MethodGet, "/api/foods", "")
	assert.Len(t, decode[[]internal.Food](t, env.Data), 10)

	w, env = do(t, r, http.MethodGet, "/api/foods/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Chicken Breast", decode[internal.Food](t, env.Data).Name)
}

func TestCatalogLookups_Errors(t *testing.T) {
	r := setupRouter(t)

	for _, path := range []string{
		"/api/recipes/99",
		"/api/diet-plans/99",
		"/api/workout-plans/99",
		"/api/exercises/99",
		"/api/foods/99",
	} {
		w, env := do(t, r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		if assert.NotNil(t, env.Error, path) {
			assert.Equal(t, 404, env.Error.Code, path)
		}
	}

	for _, path := range []string{
		"/api/recipes/abc",
		"/api/diet-plans/0",
		"/api/workout-plans/-1",
		"/api/exercises/x",
		"/api/exercises?category_id=cardio",
	} {
		w, _ := do(t, r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

type reloadingCatalog struct {
	*storage.MemoryCatalog
	next *storage.Catalog
	err  error
}

func (c *reloadingCatalog) Refresh(ctx context.Context) error {
	if c.err != nil {
		return c.err
	}
	c.Replace(c.next)
	return nil
}

func TestPostCatalogRefresh(t *testing.T) {
	w, _ := do(t, setupRouter(t), http.MethodPost, "/api/catalog/refresh", "")
	assert.Equal(t, http.StatusNotImplemented, w.Code, "memory catalogs are static")

	seed, err := storage.SeedCatalog()
	require.NoError(t, err)
	catalog := &reloadingCatalog{
		MemoryCatalog: storage.NewMemoryCatalog(seed),
		next:          &storage.Catalog{Recipes: seed.Recipes[:3]},
	}
	r := newTestRouter(catalog, testConfig())

	w, env := do(t, r, http.MethodPost, "/api/catalog/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)
	counts := decode[map[string]int](t, env.Data)
	assert.Equal(t, 3, counts["recipes"])
	assert.Zero(t, counts["foods"])

	_, env = do(t, r, http.MethodGet, "/api/recipes", "")
	assert.Len(t, decode[[]internal.Recipe](t, env.Data), 3)

	catalog.err = errors.New("bucket unreachable")
	w, _ = do(t, r, http.MethodPost, "/api/catalog/refresh", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestPostAuthToken(t *testing.T) {
	seed, err := storage.SeedCatalog()
	require.NoError(t, err)

	w, _ := do(t, setupRouter(t), http.MethodPost, "/api/auth/token", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "route only exists with a JWT secret")

	cfg := testConfig()
	cfg.JWTSecret = "s3cret"
	cfg.TokenTTL = time.Hour
	r := newTestRouter(storage.NewMemoryCatalog(seed), cfg)

	w, env := do(t, r, http.MethodPost, "/api/auth/token", "")
	require.Equal(t, http.StatusCreated, w.Code)
	issued := decode[tokenResponse](t, env.Data)
	require.NotEmpty(t, issued.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 2*time.Second)

	req := httptest.NewRequest(http.MethodGet, "/api/diet-types", nil)
	req.Header.Set("Authorization", "Bearer "+issued.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
