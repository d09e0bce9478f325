package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourname/fitplanner/internal"
	"github.com/yourname/fitplanner/internal/storage"
)

type CustomPlanRequest struct {
	Profile     internal.UserProfile     `json:"profile"`
	Preferences internal.PlanPreferences `json:"preferences"`
}

// CreateCustomPlan generates a plan from the catalog's current recipes and
// stores it for user.
func CreateCustomPlan(ctx context.Context, catalog storage.CatalogRepository, plans storage.PlanRepository, user *internal.User, req *CustomPlanRequest, rnd RandomSource) (*internal.GeneratedPlan, error) {
	recipes, err := catalog.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	plan, err := GenerateCustomPlan(req.Profile, req.Preferences, recipes, rnd)
	if err != nil {
		return nil, err
	}
	plan.ID = uuid.NewString()
	plan.UserID = user.ID
	plan.CreatedAt = time.Now().UTC()
	if err := plans.SavePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	return plan, nil
}

// GetCustomPlan hides plans owned by other users behind ErrNotFound.
func GetCustomPlan(ctx context.Context, plans storage.PlanRepository, user *internal.User, id string) (*internal.GeneratedPlan, error) {
	plan, err := plans.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.UserID != user.ID {
		return nil, fmt.Errorf("plan %s: %w", id, internal.ErrNotFound)
	}
	return plan, nil
}

func ListCustomPlans(ctx context.Context, plans storage.PlanRepository, user *internal.User) ([]internal.GeneratedPlan, error) {
	return plans.ListPlans(ctx, user.ID)
}
