package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourname/fitplanner/internal/service"
)

func PostCustomPlan(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req service.CustomPlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}

		plan, err := service.CreateCustomPlan(c.Request.Context(), app.Catalog(), app.Plans(), user, &req, app.NewRandom())
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to create custom plan")
			return
		}
		if plan.ExclusionsRelaxed {
			app.Logger().Warnf("[request_id=%s] too few recipes without excluded ingredients, exclusions ignored", c.GetString("request_id"))
		}
		HandleCreated(c, app.Logger(), plan)
	}
}

func GetCustomPlans(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		plans, err := service.ListCustomPlans(c.Request.Context(), app.Plans(), user)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch plans")
			return
		}
		HandleSuccess(c, app.Logger(), plans, map[string]any{"count": len(plans)})
	}
}

func GetCustomPlan(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		plan, err := service.GetCustomPlan(c.Request.Context(), app.Plans(), user, c.Param("id"))
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Plan not found")
			return
		}
		HandleSuccess(c, app.Logger(), plan, nil)
	}
}
