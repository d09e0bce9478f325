package api

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourname/fitplanner/internal/auth"
	"github.com/yourname/fitplanner/internal/config"
)

func NewRouter(app App, provider auth.Provider, cfg *config.Config) *gin.Engine {
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), RequestLogger(app.Logger()))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", auth.AuthMiddleware(provider))
	{
		api.POST("/calories/target", PostCalorieTarget(app))
		api.POST("/calories/summary", PostCalorieSummary(app))
		api.GET("/macros/:dietType", GetMacros(app))

		api.GET("/catalog", GetCatalog(app))
		api.POST("/catalog/refresh", PostCatalogRefresh(app))
		api.GET("/diet-types", GetDietTypes(app))
		api.GET("/recipes", GetRecipes(app))
		api.GET("/recipes/:id", GetRecipe(app))
		api.GET("/diet-plans", GetDietPlans(app))
		api.GET("/diet-plans/:id", GetDietPlan(app))
		api.GET("/workout-plans", GetWorkoutPlans(app))
		api.GET("/workout-plans/:id", GetWorkoutPlan(app))
		api.GET("/exercise-categories", GetExerciseCategories(app))
		api.GET("/exercises", GetExercises(app))
		api.GET("/exercises/:id", GetExercise(app))
		api.GET("/foods", GetFoods(app))
		api.GET("/foods/:id", GetFood(app))

		api.POST("/recommendations/diet", PostDietRecommendations(app))
		api.POST("/recommendations/workout", PostWorkoutRecommendations(app))

		api.POST("/plans/custom", PostCustomPlan(app))
		api.GET("/plans/custom", GetCustomPlans(app))
		api.GET("/plans/custom/:id", GetCustomPlan(app))

		if cfg.JWTSecret != "" {
			issuer := auth.NewJWTAuthProvider(cfg.JWTSecret, app.Logger())
			api.POST("/auth/token", PostAuthToken(app, issuer, cfg.TokenTTL))
		}
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	c.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	c.ExposeHeaders = []string{"X-Request-ID"}
	return c
}
