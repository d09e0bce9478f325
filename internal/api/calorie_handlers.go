package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourname/fitplanner/internal"
	"github.com/yourname/fitplanner/internal/service"
)

func PostCalorieTarget(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var profile internal.UserProfile
		if err := c.ShouldBindJSON(&profile); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}

		plan, err := service.ComputeCalorieTarget(profile)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Profile validation failed")
			return
		}
		HandleSuccess(c, app.Logger(), plan, nil)
	}
}

func PostCalorieSummary(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.MealSummaryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}

		summary, err := service.SummarizeDay(&req)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Meal validation failed")
			return
		}
		HandleSuccess(c, app.Logger(), summary, nil)
	}
}

// GetMacros returns the split for a diet type, plus gram targets when a
// calories query parameter is given. Unknown diet types get the balanced split.
func GetMacros(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		diet := internal.DietType(c.Param("dietType"))
		split := service.MacroSplitFor(diet)
		meta := map[string]any{"diet_type": diet}

		raw := c.Query("calories")
		if raw == "" {
			HandleSuccess(c, app.Logger(), split, meta)
			return
		}
		calories, err := strconv.Atoi(raw)
		if err == nil && calories <= 0 {
			err = errors.New("must be positive")
		}
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid calories")
			return
		}
		grams := service.MacroGramsFor(calories, diet)
		meta["calories"] = calories
		HandleSuccess(c, app.Logger(), gin.H{"split": split, "grams": grams}, meta)
	}
}
