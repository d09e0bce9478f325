package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourname/fitplanner/internal"
	"github.com/yourname/fitplanner/internal/service"
)

func PostDietRecommendations(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var profile internal.UserProfile
		if err := c.ShouldBindJSON(&profile); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}

		plans, err := app.Catalog().ListDietPlans(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch diet plans")
			return
		}

		recommended, err := service.RecommendDietPlans(plans, profile)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Profile validation failed")
			return
		}
		HandleSuccess(c, app.Logger(), recommended, nil)
	}
}

func PostWorkoutRecommendations(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var profile internal.UserProfile
		if err := c.ShouldBindJSON(&profile); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}

		plans, err := app.Catalog().ListWorkoutPlans(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch workout plans")
			return
		}

		recommended := service.RecommendWorkoutPlans(plans, profile)
		meta := map[string]any{"difficulty": service.DifficultyForActivity(profile.ActivityLevel)}
		HandleSuccess(c, app.Logger(), recommended, meta)
	}
}
