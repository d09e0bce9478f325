package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourname/fitplanner/internal/service"
	"github.com/yourname/fitplanner/internal/storage"
)

func GetCatalog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, err := storage.LoadSnapshot(c.Request.Context(), app.Catalog())
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to load catalog")
			return
		}
		HandleSuccess(c, app.Logger(), snapshot, nil)
	}
}

func GetDietTypes(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		types, err := app.Catalog().ListDietTypes(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch diet types")
			return
		}
		HandleSuccess(c, app.Logger(), types, nil)
	}
}

// GetRecipes filters by diet_type and meal_type; q additionally narrows to
// recipes whose name, description or ingredients contain it.
func GetRecipes(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipes, err := app.Catalog().ListRecipes(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch recipes")
			return
		}

		recipes = service.FilterRecipes(recipes, c.Query("diet_type"), c.Query("meal_type"))
		if q, ok := c.GetQuery("q"); ok {
			recipes = service.SearchRecipes(recipes, q)
		}
		HandleSuccess(c, app.Logger(), recipes, map[string]any{"count": len(recipes)})
	}
}

func GetDietPlans(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		plans, err := app.Catalog().ListDietPlans(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch diet plans")
			return
		}
		plans = service.FilterDietPlans(plans, c.Query("goal"), c.Query("diet_type"))
		HandleSuccess(c, app.Logger(), plans, map[string]any{"count": len(plans)})
	}
}

func GetWorkoutPlans(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		plans, err := app.Catalog().ListWorkoutPlans(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch workout plans")
			return
		}
		plans = service.FilterWorkoutPlans(plans, c.Query("goal"), c.Query("difficulty"))
		HandleSuccess(c, app.Logger(), plans, map[string]any{"count": len(plans)})
	}
}

func idParam(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err == nil && id <= 0 {
		err = errors.New("must be positive")
	}
	return id, err
}

func GetRecipe(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid recipe id")
			return
		}
		recipe, err := service.GetRecipe(c.Request.Context(), app.Catalog(), id)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to fetch recipe")
			return
		}
		HandleSuccess(c, app.Logger(), recipe, nil)
	}
}

// GetDietPlan returns the plan with its days and scheduled recipes.
func GetDietPlan(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid diet plan id")
			return
		}
		details, err := service.GetDietPlanDetails(c.Request.Context(), app.Catalog(), id)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to fetch diet plan")
			return
		}
		HandleSuccess(c, app.Logger(), details, nil)
	}
}

func GetWorkoutPlan(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid workout plan id")
			return
		}
		details, err := service.GetWorkoutPlanDetails(c.Request.Context(), app.Catalog(), id)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to fetch workout plan")
			return
		}
		HandleSuccess(c, app.Logger(), details, nil)
	}
}

func GetExerciseCategories(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := app.Catalog().ListExerciseCategories(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch exercise categories")
			return
		}
		HandleSuccess(c, app.Logger(), categories, nil)
	}
}

// GetExercises lists exercises, narrowed to one category by category_id.
func GetExercises(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := 0
		if raw := c.Query("category_id"); raw != "" {
			var err error
			if category, err = strconv.Atoi(raw); err != nil {
				HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid category_id")
				return
			}
		}
		exercises, err := app.Catalog().ListExercises(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch exercises")
			return
		}
		exercises = service.ExercisesInCategory(exercises, category)
		HandleSuccess(c, app.Logger(), exercises, map[string]any{"count": len(exercises)})
	}
}

func GetExercise(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid exercise id")
			return
		}
		exercise, err := service.GetExercise(c.Request.Context(), app.Catalog(), id)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to fetch exercise")
			return
		}
		HandleSuccess(c, app.Logger(), exercise, nil)
	}
}

// GetFoods lists the food database; q narrows it to names or brands
// containing q.
func GetFoods(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		foods, err := app.Catalog().ListFoods(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch foods")
			return
		}
		if q, ok := c.GetQuery("q"); ok {
			foods = service.SearchFoods(foods, q)
		}
		HandleSuccess(c, app.Logger(), foods, map[string]any{"count": len(foods)})
	}
}

func GetFood(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		food, err := service.GetFood(c.Request.Context(), app.Catalog(), c.Param("id"))
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to fetch food")
			return
		}
		HandleSuccess(c, app.Logger(), food, nil)
	}
}

// PostCatalogRefresh re-reads the catalog source when it supports that.
func PostCatalogRefresh(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		refresher, ok := app.Catalog().(storage.Refresher)
		if !ok {
			HandleError(c, app.Logger(), errors.New("catalog source cannot be refreshed"), http.StatusNotImplemented, "Refresh unavailable")
			return
		}
		if err := refresher.Refresh(c.Request.Context()); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadGateway, "Failed to refresh catalog")
			return
		}
		snapshot, err := storage.LoadSnapshot(c.Request.Context(), app.Catalog())
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to load catalog")
			return
		}
		app.Logger().Infof("[request_id=%s] catalog refreshed", c.GetString("request_id"))
		HandleSuccess(c, app.Logger(), gin.H{
			"recipes":       len(snapshot.Recipes),
			"diet_plans":    len(snapshot.DietPlans),
			"workout_plans": len(snapshot.WorkoutPlans),
			"exercises":     len(snapshot.Exercises),
			"foods":         len(snapshot.Foods),
		}, nil)
	}
}
